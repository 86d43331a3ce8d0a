package services

import (
	"context"

	"github.com/kurrle/espresso-helper/internal/database"
)

// BeanStore is the storage collaborator for coffee beans. Implementations
// are assumed durable; Save populates the generated id on first persist.
type BeanStore interface {
	Save(ctx context.Context, bean *database.CoffeeBean) error
	FindByID(ctx context.Context, id uint) (*database.CoffeeBean, error)
	Delete(ctx context.Context, id uint) error
	ListByOwner(ctx context.Context, ownerID uint, page database.Page) ([]database.CoffeeBean, error)
	ListActiveByOwner(ctx context.Context, ownerID uint, page database.Page) ([]database.CoffeeBean, error)
}

// ShotStore is the storage collaborator for espresso shots and their
// reviews. DeleteWithReview and ReplaceReview are atomic.
type ShotStore interface {
	Save(ctx context.Context, shot *database.EspressoShot) error
	FindByID(ctx context.Context, id uint) (*database.EspressoShot, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*database.EspressoShot, error)
	ListByOwner(ctx context.Context, ownerID uint, page database.Page) ([]database.EspressoShot, error)
	DeleteWithReview(ctx context.Context, id uint) error
	ReplaceReview(ctx context.Context, shotID uint, review *database.ShotReview) error
	FindReviewByShot(ctx context.Context, shotID uint) (*database.ShotReview, error)
}

// UserStore is the storage collaborator for Telegram identities.
type UserStore interface {
	GetOrCreate(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*database.User, error)
}
