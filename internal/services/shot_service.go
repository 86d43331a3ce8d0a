package services

import (
	"context"
	"unicode/utf8"

	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/domain"
	apperrors "github.com/kurrle/espresso-helper/internal/errors"
	"github.com/kurrle/espresso-helper/internal/logger"
)

// ShotService manages espresso shots and their reviews. A shot moves from
// unreviewed to reviewed on the first ReviewShot call; later calls replace
// the review; DeleteShot is terminal in either state.
type ShotService struct {
	shots ShotStore
	beans BeanStore
}

func NewShotService(shots ShotStore, beans BeanStore) *ShotService {
	return &ShotService{shots: shots, beans: beans}
}

// ShotInput carries the measured facts of one extraction. BeanID is
// optional; nil means "unknown bean". Notes are optional.
type ShotInput struct {
	GrindSize         float64
	DoseGrams         float64
	YieldGrams        float64
	ExtractionSeconds int
	BeanID            *uint
	Notes             string
}

func validateShotInput(input ShotInput) error {
	// A zero dose would make the brew ratio divide by zero, so it is
	// rejected up front rather than stored.
	if input.DoseGrams <= 0 {
		return apperrors.NewValidationError("dose must be greater than zero")
	}
	if input.YieldGrams < 0 {
		return apperrors.NewValidationError("yield must not be negative")
	}
	if input.ExtractionSeconds < 0 {
		return apperrors.NewValidationError("extraction time must not be negative")
	}
	if utf8.RuneCountInString(input.Notes) > database.NotesMaxLength {
		return apperrors.NewValidationError("notes exceed 500 characters")
	}
	return nil
}

func (s *ShotService) findOwned(ctx context.Context, userID, id uint) (*database.EspressoShot, error) {
	shot, err := s.shots.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if shot == nil {
		return nil, apperrors.ErrShotNotFound
	}
	if shot.UserID != userID {
		return nil, apperrors.ErrNotOwner
	}
	return shot, nil
}

// resolveBean returns the bean to link, or nil when the id is unset, the
// bean is gone, or it belongs to someone else. A foreign bean id is
// dropped silently so quick sequential entry never hard-fails on a stale
// selection.
func (s *ShotService) resolveBean(ctx context.Context, userID uint, beanID *uint) (*database.CoffeeBean, error) {
	if beanID == nil {
		return nil, nil
	}
	bean, err := s.beans.FindByID(ctx, *beanID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if bean == nil || bean.UserID != userID {
		logger.Warningf("Dropping bean %d from shot entry: not owned by user %d", *beanID, userID)
		return nil, nil
	}
	return bean, nil
}

// CreateShot validates the measurements, resolves the optional bean link,
// and persists the shot.
func (s *ShotService) CreateShot(ctx context.Context, userID uint, input ShotInput) (*database.EspressoShot, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	if err := validateShotInput(input); err != nil {
		return nil, err
	}

	bean, err := s.resolveBean(ctx, userID, input.BeanID)
	if err != nil {
		return nil, err
	}

	shot := &database.EspressoShot{
		UserID:            userID,
		GrindSize:         input.GrindSize,
		DoseGrams:         input.DoseGrams,
		YieldGrams:        input.YieldGrams,
		ExtractionSeconds: input.ExtractionSeconds,
		Notes:             input.Notes,
	}
	if bean != nil {
		shot.BeanID = &bean.ID
		shot.Bean = bean
	}
	if err := s.shots.Save(ctx, shot); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logger.Infof("Created shot %d for user %d", shot.ID, userID)
	return shot, nil
}

// UpdateShot overwrites an owned shot's measurements. A nil BeanID clears
// the bean link; a foreign BeanID clears it silently.
func (s *ShotService) UpdateShot(ctx context.Context, userID, id uint, input ShotInput) (*database.EspressoShot, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	shot, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := validateShotInput(input); err != nil {
		return nil, err
	}

	bean, err := s.resolveBean(ctx, userID, input.BeanID)
	if err != nil {
		return nil, err
	}

	shot.GrindSize = input.GrindSize
	shot.DoseGrams = input.DoseGrams
	shot.YieldGrams = input.YieldGrams
	shot.ExtractionSeconds = input.ExtractionSeconds
	shot.Notes = input.Notes
	shot.BeanID = nil
	shot.Bean = nil
	if bean != nil {
		shot.BeanID = &bean.ID
		shot.Bean = bean
	}
	if err := s.shots.Save(ctx, shot); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return shot, nil
}

// DeleteShot removes an owned shot together with any attached review.
func (s *ShotService) DeleteShot(ctx context.Context, userID, id uint) error {
	if userID == 0 {
		return apperrors.ErrNoIdentity
	}
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.shots.DeleteWithReview(ctx, id); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	logger.Infof("Deleted shot %d for user %d", id, userID)
	return nil
}

// ListShots returns one page of the caller's shots, newest first, with
// beans loaded for display.
func (s *ShotService) ListShots(ctx context.Context, userID uint, page database.Page) ([]database.EspressoShot, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	shots, err := s.shots.ListByOwner(ctx, userID, page)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return shots, nil
}

// FindShotWithDetails is an owner-scoped read with bean and review loaded;
// the diagnosis flow starts here. A foreign shot behaves as absent.
func (s *ShotService) FindShotWithDetails(ctx context.Context, userID, id uint) (*database.EspressoShot, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	shot, err := s.shots.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if shot == nil || shot.UserID != userID {
		return nil, apperrors.ErrShotNotFound
	}
	return shot, nil
}

// ReviewShot attaches a taste assessment to an owned shot. An existing
// review is replaced, not merged: the swap happens in one transaction so
// the shot never ends up with two reviews or none unintentionally.
func (s *ShotService) ReviewShot(ctx context.Context, userID, shotID uint, profile domain.TasteProfile, notes string) (*database.ShotReview, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	shot, err := s.findOwned(ctx, userID, shotID)
	if err != nil {
		return nil, err
	}
	if !profile.Valid() {
		return nil, apperrors.NewValidationError("unknown taste profile")
	}
	if utf8.RuneCountInString(notes) > database.NotesMaxLength {
		return nil, apperrors.NewValidationError("notes exceed 500 characters")
	}

	review := &database.ShotReview{
		TasteProfile: profile,
		Notes:        notes,
	}
	if err := s.shots.ReplaceReview(ctx, shot.ID, review); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logger.Infof("Reviewed shot %d as %s for user %d", shot.ID, profile, userID)
	return review, nil
}

// FindReview returns the review of an owned shot, or nil if the shot has
// not been reviewed yet.
func (s *ShotService) FindReview(ctx context.Context, userID, shotID uint) (*database.ShotReview, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	shot, err := s.shots.FindByID(ctx, shotID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if shot == nil || shot.UserID != userID {
		return nil, apperrors.ErrShotNotFound
	}
	review, err := s.shots.FindReviewByShot(ctx, shotID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return review, nil
}
