package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTasteProfileAxes checks that no profile claims both directions of an
// axis: a shot cannot be sour and bitter, or muddy and watery, at once.
func TestTasteProfileAxes(t *testing.T) {
	for _, profile := range AllTasteProfiles() {
		assert.False(t, profile.IsSour() && profile.IsBitter(),
			"%s flags both sour and bitter", profile)
		assert.False(t, profile.IsMuddy() && profile.IsWatery(),
			"%s flags both muddy and watery", profile)
	}
}

// TestTasteProfileFlags pins the full rule table: every compass position
// and the exact defect flags it carries.
func TestTasteProfileFlags(t *testing.T) {
	tests := []struct {
		profile TasteProfile
		sour    bool
		bitter  bool
		muddy   bool
		watery  bool
	}{
		{TasteSour, true, false, false, false},
		{TasteMuddySour, true, false, true, false},
		{TasteMuddy, false, false, true, false},
		{TasteMuddyBitter, false, true, true, false},
		{TasteBitter, false, true, false, false},
		{TasteWateryBitter, false, true, false, true},
		{TasteWatery, false, false, false, true},
		{TasteWaterySour, true, false, false, true},
		{TasteBalanced, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			assert.Equal(t, tt.sour, tt.profile.IsSour())
			assert.Equal(t, tt.bitter, tt.profile.IsBitter())
			assert.Equal(t, tt.muddy, tt.profile.IsMuddy())
			assert.Equal(t, tt.watery, tt.profile.IsWatery())
		})
	}
}

// TestTasteProfileAdjustmentDirections checks that the yield direction
// follows the sour/bitter axis and the grind direction follows the
// watery/muddy axis.
func TestTasteProfileAdjustmentDirections(t *testing.T) {
	for _, profile := range AllTasteProfiles() {
		assert.Equal(t, profile.IsSour(), profile.ShouldIncreaseYield(), "%s", profile)
		assert.Equal(t, profile.IsBitter(), profile.ShouldDecreaseYield(), "%s", profile)
		assert.Equal(t, profile.IsWatery(), profile.ShouldGrindFiner(), "%s", profile)
		assert.Equal(t, profile.IsMuddy(), profile.ShouldGrindCoarser(), "%s", profile)
	}
}

// TestBalancedNeedsNoAdjustments checks the one profile with no defect
// flags at all.
func TestBalancedNeedsNoAdjustments(t *testing.T) {
	p := TasteBalanced
	assert.False(t, p.ShouldIncreaseYield())
	assert.False(t, p.ShouldDecreaseYield())
	assert.False(t, p.ShouldGrindFiner())
	assert.False(t, p.ShouldGrindCoarser())
	assert.Equal(t, "No adjustments needed!", p.Recommendation())
}

func TestTasteProfileDisplayNames(t *testing.T) {
	assert.Equal(t, "Too Sour/Acidic", TasteSour.DisplayName())
	assert.Equal(t, "High Strength/Muddy", TasteMuddy.DisplayName())
	assert.Equal(t, "Too Bitter", TasteBitter.DisplayName())
	assert.Equal(t, "Low Strength/Watery", TasteWatery.DisplayName())
	assert.Equal(t, "Balanced/Perfect", TasteBalanced.DisplayName())
}

func TestParseTasteProfile(t *testing.T) {
	for _, profile := range AllTasteProfiles() {
		parsed, err := ParseTasteProfile(string(profile))
		require.NoError(t, err)
		assert.Equal(t, profile, parsed)
	}

	_, err := ParseTasteProfile("CRISPY")
	assert.Error(t, err)
	_, err = ParseTasteProfile("")
	assert.Error(t, err)
	_, err = ParseTasteProfile("sour")
	assert.Error(t, err, "profiles are stored upper case")
}

func TestAllTasteProfilesCoversCompass(t *testing.T) {
	profiles := AllTasteProfiles()
	require.Len(t, profiles, 9)
	seen := make(map[TasteProfile]bool)
	for _, p := range profiles {
		assert.True(t, p.Valid())
		assert.False(t, seen[p], "%s listed twice", p)
		seen[p] = true
	}
	assert.Equal(t, TasteBalanced, profiles[len(profiles)-1], "balanced comes last")
}

// TestSuggestDecreasedYieldFloor checks that the suggested yield never
// drops below the dose. From 20g with an 18g dose the full 2g step would
// land at 18g exactly; from 19g it is clamped.
func TestSuggestDecreasedYieldFloor(t *testing.T) {
	assert.Equal(t, 28.0, SuggestDecreasedYield(30, 18))
	assert.Equal(t, 18.0, SuggestDecreasedYield(20, 18))
	assert.Equal(t, 18.0, SuggestDecreasedYield(19, 18))
	assert.Equal(t, 18.0, SuggestDecreasedYield(17, 18), "already below the floor")
}

func TestSuggestionSteps(t *testing.T) {
	assert.Equal(t, 38.0, SuggestIncreasedYield(36))
	assert.Equal(t, 9.0, SuggestFinerGrind(9.5))
	assert.Equal(t, 10.0, SuggestCoarserGrind(9.5))
}
