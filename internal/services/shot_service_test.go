package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/domain"
	apperrors "github.com/kurrle/espresso-helper/internal/errors"
)

func newShotFixture(t *testing.T) (*ShotService, *BeanService, *memShotStore) {
	t.Helper()
	beanStore := newMemBeanStore()
	shotStore := newMemShotStore(beanStore)
	return NewShotService(shotStore, beanStore), NewBeanService(beanStore), shotStore
}

func validShotInput() ShotInput {
	return ShotInput{
		GrindSize:         9.5,
		DoseGrams:         18,
		YieldGrams:        36,
		ExtractionSeconds: 28,
	}
}

func TestCreateShot(t *testing.T) {
	svc, _, _ := newShotFixture(t)

	shot, err := svc.CreateShot(context.Background(), 1, validShotInput())
	require.NoError(t, err)
	assert.NotZero(t, shot.ID)
	assert.Equal(t, uint(1), shot.UserID)
	assert.Nil(t, shot.BeanID)
	assert.Equal(t, 2.0, shot.BrewRatio())
}

func TestCreateShotValidation(t *testing.T) {
	svc, _, _ := newShotFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*ShotInput)
	}{
		{"zero dose", func(in *ShotInput) { in.DoseGrams = 0 }},
		{"negative dose", func(in *ShotInput) { in.DoseGrams = -18 }},
		{"negative yield", func(in *ShotInput) { in.YieldGrams = -1 }},
		{"negative time", func(in *ShotInput) { in.ExtractionSeconds = -1 }},
		{"notes too long", func(in *ShotInput) { in.Notes = strings.Repeat("x", 501) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validShotInput()
			tt.mutate(&input)
			_, err := svc.CreateShot(ctx, 1, input)
			assert.True(t, apperrors.IsValidation(err), "want validation error, got %v", err)
		})
	}

	// Zero yield and zero time are legal: a choked machine or an
	// unmeasured extraction still make a storable record.
	input := validShotInput()
	input.YieldGrams = 0
	input.ExtractionSeconds = 0
	_, err := svc.CreateShot(ctx, 1, input)
	assert.NoError(t, err)
}

func TestCreateShotWithBean(t *testing.T) {
	svc, beans, _ := newShotFixture(t)
	ctx := context.Background()

	bean, err := beans.CreateBean(ctx, 1, validBeanInput())
	require.NoError(t, err)

	input := validShotInput()
	input.BeanID = &bean.ID
	shot, err := svc.CreateShot(ctx, 1, input)
	require.NoError(t, err)
	require.NotNil(t, shot.BeanID)
	assert.Equal(t, bean.ID, *shot.BeanID)
	assert.Equal(t, "Kenya AA", shot.BeanName())
}

// TestCreateShotDropsForeignBean checks that a stale or foreign bean id is
// dropped rather than failing the whole entry: the shot is saved without a
// bean link.
func TestCreateShotDropsForeignBean(t *testing.T) {
	svc, beans, _ := newShotFixture(t)
	ctx := context.Background()

	foreign, err := beans.CreateBean(ctx, 2, validBeanInput())
	require.NoError(t, err)

	input := validShotInput()
	input.BeanID = &foreign.ID
	shot, err := svc.CreateShot(ctx, 1, input)
	require.NoError(t, err)
	assert.Nil(t, shot.BeanID, "foreign bean id is dropped silently")

	missing := uint(999)
	input = validShotInput()
	input.BeanID = &missing
	shot, err = svc.CreateShot(ctx, 1, input)
	require.NoError(t, err)
	assert.Nil(t, shot.BeanID, "missing bean id is dropped silently")
}

func TestUpdateShot(t *testing.T) {
	svc, beans, _ := newShotFixture(t)
	ctx := context.Background()

	bean, err := beans.CreateBean(ctx, 1, validBeanInput())
	require.NoError(t, err)

	input := validShotInput()
	input.BeanID = &bean.ID
	shot, err := svc.CreateShot(ctx, 1, input)
	require.NoError(t, err)

	// A nil BeanID on update clears the link.
	updated, err := svc.UpdateShot(ctx, 1, shot.ID, ShotInput{
		GrindSize:         9.0,
		DoseGrams:         18,
		YieldGrams:        40,
		ExtractionSeconds: 30,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.BeanID)
	assert.Equal(t, 40.0, updated.YieldGrams)
}

func TestShotNotFoundBeforeOwnership(t *testing.T) {
	svc, _, _ := newShotFixture(t)
	ctx := context.Background()

	shot, err := svc.CreateShot(ctx, 1, validShotInput())
	require.NoError(t, err)

	_, err = svc.UpdateShot(ctx, 2, 999, validShotInput())
	assert.True(t, apperrors.IsNotFound(err), "missing id: want not-found, got %v", err)

	_, err = svc.UpdateShot(ctx, 2, shot.ID, validShotInput())
	assert.True(t, apperrors.IsPermission(err), "foreign id: want permission, got %v", err)

	err = svc.DeleteShot(ctx, 2, shot.ID)
	assert.True(t, apperrors.IsPermission(err))

	_, err = svc.ReviewShot(ctx, 2, shot.ID, domain.TasteSour, "")
	assert.True(t, apperrors.IsPermission(err))
}

func TestFindShotWithDetailsScopedToOwner(t *testing.T) {
	svc, _, _ := newShotFixture(t)
	ctx := context.Background()

	shot, err := svc.CreateShot(ctx, 1, validShotInput())
	require.NoError(t, err)

	_, err = svc.FindShotWithDetails(ctx, 2, shot.ID)
	assert.True(t, apperrors.IsNotFound(err), "foreign shot reads as absent, got %v", err)
}

func TestReviewShot(t *testing.T) {
	svc, _, _ := newShotFixture(t)
	ctx := context.Background()

	shot, err := svc.CreateShot(ctx, 1, validShotInput())
	require.NoError(t, err)

	review, err := svc.ReviewShot(ctx, 1, shot.ID, domain.TasteSour, "sharp finish")
	require.NoError(t, err)
	assert.Equal(t, shot.ID, review.ShotID)
	assert.Equal(t, domain.TasteSour, review.TasteProfile)

	found, err := svc.FindReview(ctx, 1, shot.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "sharp finish", found.Notes)
}

// TestReviewShotReplacesExisting checks the one-review-per-shot rule: a
// second review fully replaces the first, notes included.
func TestReviewShotReplacesExisting(t *testing.T) {
	svc, _, _ := newShotFixture(t)
	ctx := context.Background()

	shot, err := svc.CreateShot(ctx, 1, validShotInput())
	require.NoError(t, err)

	_, err = svc.ReviewShot(ctx, 1, shot.ID, domain.TasteSour, "first impression")
	require.NoError(t, err)

	_, err = svc.ReviewShot(ctx, 1, shot.ID, domain.TasteWaterySour, "")
	require.NoError(t, err)

	review, err := svc.FindReview(ctx, 1, shot.ID)
	require.NoError(t, err)
	require.NotNil(t, review)
	assert.Equal(t, domain.TasteWaterySour, review.TasteProfile)
	assert.Empty(t, review.Notes, "replacement does not merge old notes")
}

func TestReviewShotValidation(t *testing.T) {
	svc, _, _ := newShotFixture(t)
	ctx := context.Background()

	shot, err := svc.CreateShot(ctx, 1, validShotInput())
	require.NoError(t, err)

	_, err = svc.ReviewShot(ctx, 1, shot.ID, "CRISPY", "")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.ReviewShot(ctx, 1, shot.ID, domain.TasteSour, strings.Repeat("x", 501))
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.ReviewShot(ctx, 1, 999, domain.TasteSour, "")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFindReviewUnreviewedShot(t *testing.T) {
	svc, _, _ := newShotFixture(t)
	ctx := context.Background()

	shot, err := svc.CreateShot(ctx, 1, validShotInput())
	require.NoError(t, err)

	review, err := svc.FindReview(ctx, 1, shot.ID)
	require.NoError(t, err)
	assert.Nil(t, review, "unreviewed shot has no review, which is not an error")
}

// TestDeleteShotCascadesToReview checks that deleting a shot takes its
// review with it and that the id is fully gone afterwards.
func TestDeleteShotCascadesToReview(t *testing.T) {
	svc, _, store := newShotFixture(t)
	ctx := context.Background()

	shot, err := svc.CreateShot(ctx, 1, validShotInput())
	require.NoError(t, err)
	_, err = svc.ReviewShot(ctx, 1, shot.ID, domain.TasteBitter, "harsh")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShot(ctx, 1, shot.ID))

	gone, err := store.FindByID(ctx, shot.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	orphan, err := store.FindReviewByShot(ctx, shot.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan, "review must not outlive its shot")

	err = svc.DeleteShot(ctx, 1, shot.ID)
	assert.True(t, apperrors.IsNotFound(err), "second delete: want not-found, got %v", err)
}

func TestListShotsNewestFirstWithPaging(t *testing.T) {
	svc, _, _ := newShotFixture(t)
	ctx := context.Background()

	var last *database.EspressoShot
	for i := 0; i < 7; i++ {
		shot, err := svc.CreateShot(ctx, 1, validShotInput())
		require.NoError(t, err)
		last = shot
	}
	// Another user's shots never leak into the listing.
	_, err := svc.CreateShot(ctx, 2, validShotInput())
	require.NoError(t, err)

	first, err := svc.ListShots(ctx, 1, database.Page{Number: 0, Size: 5})
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Equal(t, last.ID, first[0].ID, "newest first")

	second, err := svc.ListShots(ctx, 1, database.Page{Number: 1, Size: 5})
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestShotOperationsRequireIdentity(t *testing.T) {
	svc, _, _ := newShotFixture(t)
	ctx := context.Background()

	_, err := svc.CreateShot(ctx, 0, validShotInput())
	assert.ErrorIs(t, err, apperrors.ErrNoIdentity)
	_, err = svc.ListShots(ctx, 0, database.Page{})
	assert.ErrorIs(t, err, apperrors.ErrNoIdentity)
	_, err = svc.ReviewShot(ctx, 0, 1, domain.TasteSour, "")
	assert.ErrorIs(t, err, apperrors.ErrNoIdentity)
}
