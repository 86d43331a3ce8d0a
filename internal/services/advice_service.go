package services

import (
	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/domain"
)

// Adjustment is one concrete parameter change derived from a review.
type Adjustment struct {
	Action      string
	Unit        string
	Current     float64
	Suggested   float64
	Explanation string
}

// Advice is the dial-in guidance for one reviewed shot: the profile's
// summary sentence plus zero, one, or two numeric adjustments.
type Advice struct {
	Profile     domain.TasteProfile
	Summary     string
	Balanced    bool
	Adjustments []Adjustment
}

// AdviceService turns a shot and its review into dial-in guidance. It is
// pure presentation logic over the taste rule table: no I/O, no state.
type AdviceService struct{}

func NewAdviceService() *AdviceService {
	return &AdviceService{}
}

// Advise derives the adjustments for a reviewed shot. A profile can flag
// at most one yield direction and at most one grind direction.
func (s *AdviceService) Advise(shot *database.EspressoShot, review *database.ShotReview) Advice {
	profile := review.TasteProfile
	advice := Advice{
		Profile:  profile,
		Summary:  profile.Recommendation(),
		Balanced: profile == domain.TasteBalanced,
	}

	if profile.ShouldIncreaseYield() {
		advice.Adjustments = append(advice.Adjustments, Adjustment{
			Action:      "Increase Yield",
			Unit:        "g",
			Current:     shot.YieldGrams,
			Suggested:   domain.SuggestIncreasedYield(shot.YieldGrams),
			Explanation: "Higher yield extracts more, reducing sourness",
		})
	} else if profile.ShouldDecreaseYield() {
		advice.Adjustments = append(advice.Adjustments, Adjustment{
			Action:      "Decrease Yield",
			Unit:        "g",
			Current:     shot.YieldGrams,
			Suggested:   domain.SuggestDecreasedYield(shot.YieldGrams, shot.DoseGrams),
			Explanation: "Lower yield reduces over-extraction and bitterness",
		})
	}

	if profile.ShouldGrindFiner() {
		advice.Adjustments = append(advice.Adjustments, Adjustment{
			Action:      "Grind Finer",
			Current:     shot.GrindSize,
			Suggested:   domain.SuggestFinerGrind(shot.GrindSize),
			Explanation: "Finer grind increases extraction and body",
		})
	} else if profile.ShouldGrindCoarser() {
		advice.Adjustments = append(advice.Adjustments, Adjustment{
			Action:      "Grind Coarser",
			Current:     shot.GrindSize,
			Suggested:   domain.SuggestCoarserGrind(shot.GrindSize),
			Explanation: "Coarser grind reduces muddiness and over-extraction",
		})
	}

	return advice
}
