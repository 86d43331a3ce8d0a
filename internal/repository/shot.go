package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kurrle/espresso-helper/internal/database"
)

// ShotRepository handles espresso shot and shot review persistence.
type ShotRepository struct {
	db *gorm.DB
}

// NewShotRepository creates a new shot repository
func NewShotRepository(db *gorm.DB) *ShotRepository {
	return &ShotRepository{db: db}
}

// Save persists a shot, creating it or updating it in place.
func (r *ShotRepository) Save(ctx context.Context, shot *database.EspressoShot) error {
	if err := r.db.WithContext(ctx).Save(shot).Error; err != nil {
		return fmt.Errorf("failed to save espresso shot: %w", err)
	}
	return nil
}

// FindByID returns the shot with the given id, or nil if none exists.
// No associations are loaded.
func (r *ShotRepository) FindByID(ctx context.Context, id uint) (*database.EspressoShot, error) {
	var shot database.EspressoShot
	if err := r.db.WithContext(ctx).First(&shot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find espresso shot: %w", err)
	}
	return &shot, nil
}

// FindByIDWithDetails returns the shot with its bean and review loaded.
// A dangling bean reference leaves Bean nil.
func (r *ShotRepository) FindByIDWithDetails(ctx context.Context, id uint) (*database.EspressoShot, error) {
	var shot database.EspressoShot
	if err := r.db.WithContext(ctx).
		Preload("Bean").
		Preload("Review").
		First(&shot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find espresso shot with details: %w", err)
	}
	return &shot, nil
}

// ListByOwner returns one page of the owner's shots, newest first, with
// beans loaded for display.
func (r *ShotRepository) ListByOwner(ctx context.Context, ownerID uint, page database.Page) ([]database.EspressoShot, error) {
	var shots []database.EspressoShot
	if err := r.db.WithContext(ctx).
		Preload("Bean").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&shots).Error; err != nil {
		return nil, fmt.Errorf("failed to list espresso shots: %w", err)
	}
	return shots, nil
}

// DeleteWithReview removes a shot and any attached review in one
// transaction. A review never outlives its shot.
func (r *ShotRepository) DeleteWithReview(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("shot_id = ?", id).Delete(&database.ShotReview{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&database.EspressoShot{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete espresso shot: %w", err)
	}
	return nil
}

// ReplaceReview atomically swaps any existing review of the shot for the
// given one. Last writer wins when the same user races against themselves.
func (r *ShotRepository) ReplaceReview(ctx context.Context, shotID uint, review *database.ShotReview) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("shot_id = ?", shotID).Delete(&database.ShotReview{}).Error; err != nil {
			return err
		}
		review.ShotID = shotID
		return tx.Create(review).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace shot review: %w", err)
	}
	return nil
}

// FindReviewByShot returns the shot's review, or nil if it has none.
func (r *ShotRepository) FindReviewByShot(ctx context.Context, shotID uint) (*database.ShotReview, error) {
	var review database.ShotReview
	if err := r.db.WithContext(ctx).Where("shot_id = ?", shotID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shot review: %w", err)
	}
	return &review, nil
}
