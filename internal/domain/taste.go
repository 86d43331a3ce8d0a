package domain

import "fmt"

// TasteProfile is one of the 9 positions on the espresso dial-in compass.
// Each position classifies a shot's flavor defect(s) and maps to a
// corrective adjustment of grind size and/or brew yield.
type TasteProfile string

const (
	TasteSour         TasteProfile = "SOUR"
	TasteMuddySour    TasteProfile = "MUDDY_SOUR"
	TasteMuddy        TasteProfile = "MUDDY"
	TasteMuddyBitter  TasteProfile = "MUDDY_BITTER"
	TasteBitter       TasteProfile = "BITTER"
	TasteWateryBitter TasteProfile = "WATERY_BITTER"
	TasteWatery       TasteProfile = "WATERY"
	TasteWaterySour   TasteProfile = "WATERY_SOUR"
	TasteBalanced     TasteProfile = "BALANCED"
)

// tasteTraits holds the axis flags and presentation strings for one profile.
// At most one of {sour, bitter} and at most one of {muddy, watery} may be set.
type tasteTraits struct {
	displayName    string
	recommendation string
	sour           bool
	bitter         bool
	muddy          bool
	watery         bool
}

// tasteTable is the rule table behind the dial-in compass. It is exhaustive
// over the enum: a profile without a row here fails Valid(), so adding a
// 10th profile forces a deliberate table update.
var tasteTable = map[TasteProfile]tasteTraits{
	TasteSour:         {"Too Sour/Acidic", "Increase yield", true, false, false, false},
	TasteMuddySour:    {"Muddy + Sour", "Increase yield and grind coarser", true, false, true, false},
	TasteMuddy:        {"High Strength/Muddy", "Grind coarser", false, false, true, false},
	TasteMuddyBitter:  {"Muddy + Bitter", "Decrease yield and grind coarser", false, true, true, false},
	TasteBitter:       {"Too Bitter", "Decrease yield", false, true, false, false},
	TasteWateryBitter: {"Watery + Bitter", "Decrease yield and grind finer", false, true, false, true},
	TasteWatery:       {"Low Strength/Watery", "Grind finer", false, false, false, true},
	TasteWaterySour:   {"Watery + Sour", "Increase yield and grind finer", true, false, false, true},
	TasteBalanced:     {"Balanced/Perfect", "No adjustments needed!", false, false, false, false},
}

// AllTasteProfiles returns every profile in compass order, starting at
// "too sour" and walking clockwise, with BALANCED last.
func AllTasteProfiles() []TasteProfile {
	return []TasteProfile{
		TasteSour,
		TasteMuddySour,
		TasteMuddy,
		TasteMuddyBitter,
		TasteBitter,
		TasteWateryBitter,
		TasteWatery,
		TasteWaterySour,
		TasteBalanced,
	}
}

// ParseTasteProfile converts a stored string back into a TasteProfile.
func ParseTasteProfile(s string) (TasteProfile, error) {
	p := TasteProfile(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown taste profile %q", s)
	}
	return p, nil
}

// Valid reports whether the profile has a row in the rule table.
func (p TasteProfile) Valid() bool {
	_, ok := tasteTable[p]
	return ok
}

// DisplayName returns the human-readable name of the compass position.
func (p TasteProfile) DisplayName() string {
	return tasteTable[p].displayName
}

// Recommendation returns the one-sentence adjustment summary.
func (p TasteProfile) Recommendation() string {
	return tasteTable[p].recommendation
}

func (p TasteProfile) IsSour() bool   { return tasteTable[p].sour }
func (p TasteProfile) IsBitter() bool { return tasteTable[p].bitter }
func (p TasteProfile) IsMuddy() bool  { return tasteTable[p].muddy }
func (p TasteProfile) IsWatery() bool { return tasteTable[p].watery }

// ShouldIncreaseYield reports whether a longer yield would fix the defect.
func (p TasteProfile) ShouldIncreaseYield() bool { return tasteTable[p].sour }

// ShouldDecreaseYield reports whether a shorter yield would fix the defect.
func (p TasteProfile) ShouldDecreaseYield() bool { return tasteTable[p].bitter }

// ShouldGrindFiner reports whether a finer grind would fix the defect.
func (p TasteProfile) ShouldGrindFiner() bool { return tasteTable[p].watery }

// ShouldGrindCoarser reports whether a coarser grind would fix the defect.
func (p TasteProfile) ShouldGrindCoarser() bool { return tasteTable[p].muddy }

// Adjustment step sizes for the numeric suggestions.
const (
	YieldStepGrams = 2.0
	GrindStep      = 0.5
)

// SuggestIncreasedYield returns the yield to try for a sour shot.
func SuggestIncreasedYield(currentYield float64) float64 {
	return currentYield + YieldStepGrams
}

// SuggestDecreasedYield returns the yield to try for a bitter shot. The
// suggestion never drops below the dose: a 1:1 ratio is the floor.
func SuggestDecreasedYield(currentYield, doseGrams float64) float64 {
	suggested := currentYield - YieldStepGrams
	if suggested < doseGrams {
		return doseGrams
	}
	return suggested
}

// SuggestFinerGrind returns the grind setting to try for a watery shot.
func SuggestFinerGrind(currentGrind float64) float64 {
	return currentGrind - GrindStep
}

// SuggestCoarserGrind returns the grind setting to try for a muddy shot.
func SuggestCoarserGrind(currentGrind float64) float64 {
	return currentGrind + GrindStep
}
