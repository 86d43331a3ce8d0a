package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kurrle/espresso-helper/internal/database"
)

// BeanRepository handles coffee bean persistence.
type BeanRepository struct {
	db *gorm.DB
}

// NewBeanRepository creates a new bean repository
func NewBeanRepository(db *gorm.DB) *BeanRepository {
	return &BeanRepository{db: db}
}

// Save persists a bean, creating it or updating it in place.
func (r *BeanRepository) Save(ctx context.Context, bean *database.CoffeeBean) error {
	if err := r.db.WithContext(ctx).Save(bean).Error; err != nil {
		return fmt.Errorf("failed to save coffee bean: %w", err)
	}
	return nil
}

// FindByID returns the bean with the given id, or nil if none exists.
func (r *BeanRepository) FindByID(ctx context.Context, id uint) (*database.CoffeeBean, error) {
	var bean database.CoffeeBean
	if err := r.db.WithContext(ctx).First(&bean, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find coffee bean: %w", err)
	}
	return &bean, nil
}

// Delete hard-removes a bean. Shots referencing it keep their bean id.
func (r *BeanRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(&database.CoffeeBean{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete coffee bean: %w", err)
	}
	return nil
}

// ListByOwner returns one page of the owner's beans, retired ones included.
func (r *BeanRepository) ListByOwner(ctx context.Context, ownerID uint, page database.Page) ([]database.CoffeeBean, error) {
	var beans []database.CoffeeBean
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&beans).Error; err != nil {
		return nil, fmt.Errorf("failed to list coffee beans: %w", err)
	}
	return beans, nil
}

// ListActiveByOwner returns one page of the owner's beans that have not
// been retired.
func (r *BeanRepository) ListActiveByOwner(ctx context.Context, ownerID uint, page database.Page) ([]database.CoffeeBean, error) {
	var beans []database.CoffeeBean
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", ownerID, true).
		Order("created_at DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&beans).Error; err != nil {
		return nil, fmt.Errorf("failed to list active coffee beans: %w", err)
	}
	return beans, nil
}
