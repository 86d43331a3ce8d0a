package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/domain"
)

func adviseFor(profile domain.TasteProfile) Advice {
	shot := &database.EspressoShot{
		GrindSize:         9.5,
		DoseGrams:         18,
		YieldGrams:        36,
		ExtractionSeconds: 28,
	}
	review := &database.ShotReview{TasteProfile: profile}
	return NewAdviceService().Advise(shot, review)
}

func TestAdviseBalanced(t *testing.T) {
	advice := adviseFor(domain.TasteBalanced)
	assert.True(t, advice.Balanced)
	assert.Empty(t, advice.Adjustments)
	assert.Equal(t, "No adjustments needed!", advice.Summary)
}

func TestAdviseSingleAxis(t *testing.T) {
	advice := adviseFor(domain.TasteSour)
	require.Len(t, advice.Adjustments, 1)
	adj := advice.Adjustments[0]
	assert.Equal(t, "Increase Yield", adj.Action)
	assert.Equal(t, 36.0, adj.Current)
	assert.Equal(t, 38.0, adj.Suggested)

	advice = adviseFor(domain.TasteMuddy)
	require.Len(t, advice.Adjustments, 1)
	adj = advice.Adjustments[0]
	assert.Equal(t, "Grind Coarser", adj.Action)
	assert.Equal(t, 9.5, adj.Current)
	assert.Equal(t, 10.0, adj.Suggested)
}

// TestAdviseCornerProfiles checks the diagonal compass positions, which
// combine one yield move and one grind move.
func TestAdviseCornerProfiles(t *testing.T) {
	tests := []struct {
		profile     domain.TasteProfile
		yieldAction string
		grindAction string
	}{
		{domain.TasteMuddySour, "Increase Yield", "Grind Coarser"},
		{domain.TasteMuddyBitter, "Decrease Yield", "Grind Coarser"},
		{domain.TasteWateryBitter, "Decrease Yield", "Grind Finer"},
		{domain.TasteWaterySour, "Increase Yield", "Grind Finer"},
	}

	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			advice := adviseFor(tt.profile)
			assert.False(t, advice.Balanced)
			require.Len(t, advice.Adjustments, 2, "corner profiles move both axes")
			assert.Equal(t, tt.yieldAction, advice.Adjustments[0].Action)
			assert.Equal(t, tt.grindAction, advice.Adjustments[1].Action)
		})
	}
}

// TestAdviseDecreaseYieldFloorsAtDose checks that "decrease yield" never
// suggests going below a 1:1 ratio.
func TestAdviseDecreaseYieldFloorsAtDose(t *testing.T) {
	shot := &database.EspressoShot{
		GrindSize:         9.5,
		DoseGrams:         18,
		YieldGrams:        19,
		ExtractionSeconds: 28,
	}
	review := &database.ShotReview{TasteProfile: domain.TasteBitter}

	advice := NewAdviceService().Advise(shot, review)
	require.Len(t, advice.Adjustments, 1)
	assert.Equal(t, 18.0, advice.Adjustments[0].Suggested)
}

func TestAdviseSummaryMatchesProfile(t *testing.T) {
	for _, profile := range domain.AllTasteProfiles() {
		advice := adviseFor(profile)
		assert.Equal(t, profile, advice.Profile)
		assert.Equal(t, profile.Recommendation(), advice.Summary)
	}
}
