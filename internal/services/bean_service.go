package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/domain"
	apperrors "github.com/kurrle/espresso-helper/internal/errors"
	"github.com/kurrle/espresso-helper/internal/logger"
)

// BeanService manages a user's coffee beans. Every operation is scoped to
// the caller's identity: lookups by id are checked for existence first,
// then for ownership.
type BeanService struct {
	beans BeanStore
}

func NewBeanService(beans BeanStore) *BeanService {
	return &BeanService{beans: beans}
}

// BeanInput carries the mutable fields of a coffee bean. Origin and
// FlavorNotes are optional.
type BeanInput struct {
	Name        string
	RoastLevel  domain.RoastLevel
	Origin      string
	FlavorNotes string
}

func validateBeanInput(input BeanInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("bean name must not be empty")
	}
	if utf8.RuneCountInString(input.Name) > database.BeanNameMaxLength {
		return apperrors.NewValidationError("bean name exceeds 100 characters")
	}
	if utf8.RuneCountInString(input.Origin) > database.BeanOriginMaxLength {
		return apperrors.NewValidationError("bean origin exceeds 100 characters")
	}
	if !input.RoastLevel.Valid() {
		return apperrors.NewValidationError("unknown roast level")
	}
	if utf8.RuneCountInString(input.FlavorNotes) > database.FlavorNotesMaxLength {
		return apperrors.NewValidationError("flavor notes exceed 500 characters")
	}
	return nil
}

// findOwned looks up a bean for a mutating operation. Existence is checked
// before ownership so a stale id and a foreign id fail differently.
func (s *BeanService) findOwned(ctx context.Context, userID, id uint) (*database.CoffeeBean, error) {
	bean, err := s.beans.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if bean == nil {
		return nil, apperrors.ErrBeanNotFound
	}
	if bean.UserID != userID {
		return nil, apperrors.ErrNotOwner
	}
	return bean, nil
}

// CreateBean validates the input, stamps the owner, and persists the bean.
func (s *BeanService) CreateBean(ctx context.Context, userID uint, input BeanInput) (*database.CoffeeBean, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	if err := validateBeanInput(input); err != nil {
		return nil, err
	}

	bean := &database.CoffeeBean{
		UserID:      userID,
		Name:        input.Name,
		Origin:      input.Origin,
		RoastLevel:  input.RoastLevel,
		FlavorNotes: input.FlavorNotes,
		Active:      true,
	}
	if err := s.beans.Save(ctx, bean); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logger.Infof("Created bean %d for user %d", bean.ID, userID)
	return bean, nil
}

// UpdateBean overwrites the mutable fields of an owned bean in place. The
// owner itself is immutable.
func (s *BeanService) UpdateBean(ctx context.Context, userID, id uint, input BeanInput) (*database.CoffeeBean, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	bean, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := validateBeanInput(input); err != nil {
		return nil, err
	}

	bean.Name = input.Name
	bean.Origin = input.Origin
	bean.RoastLevel = input.RoastLevel
	bean.FlavorNotes = input.FlavorNotes
	if err := s.beans.Save(ctx, bean); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return bean, nil
}

// DeleteBean hard-removes an owned bean. Shots keep their bean id and
// render as "unknown bean" afterwards; deletion never cascades to shots.
func (s *BeanService) DeleteBean(ctx context.Context, userID, id uint) error {
	if userID == 0 {
		return apperrors.ErrNoIdentity
	}
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.beans.Delete(ctx, id); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	logger.Infof("Deleted bean %d for user %d", id, userID)
	return nil
}

// DeactivateBean retires an owned bean without deleting it, keeping it out
// of selection lists while historical shots still reference it.
func (s *BeanService) DeactivateBean(ctx context.Context, userID, id uint) error {
	if userID == 0 {
		return apperrors.ErrNoIdentity
	}
	bean, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	bean.Active = false
	if err := s.beans.Save(ctx, bean); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// ListBeans returns one page of the caller's beans, retired ones included.
func (s *BeanService) ListBeans(ctx context.Context, userID uint, page database.Page) ([]database.CoffeeBean, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	beans, err := s.beans.ListByOwner(ctx, userID, page)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return beans, nil
}

// ListActiveBeans returns one page of the caller's beans that have not
// been retired.
func (s *BeanService) ListActiveBeans(ctx context.Context, userID uint, page database.Page) ([]database.CoffeeBean, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	beans, err := s.beans.ListActiveByOwner(ctx, userID, page)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return beans, nil
}

// FindBean is an owner-scoped read: a bean that exists but belongs to
// another user behaves as absent.
func (s *BeanService) FindBean(ctx context.Context, userID, id uint) (*database.CoffeeBean, error) {
	if userID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	bean, err := s.beans.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if bean == nil || bean.UserID != userID {
		return nil, apperrors.ErrBeanNotFound
	}
	return bean, nil
}
