package interfaces

import (
	"context"

	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/domain"
	"github.com/kurrle/espresso-helper/internal/services"
)

// UserServiceInterface defines the contract for identity resolution
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*database.User, error)
}

// BeanServiceInterface defines the contract for coffee bean operations
type BeanServiceInterface interface {
	CreateBean(ctx context.Context, userID uint, input services.BeanInput) (*database.CoffeeBean, error)
	UpdateBean(ctx context.Context, userID, id uint, input services.BeanInput) (*database.CoffeeBean, error)
	DeleteBean(ctx context.Context, userID, id uint) error
	DeactivateBean(ctx context.Context, userID, id uint) error
	ListBeans(ctx context.Context, userID uint, page database.Page) ([]database.CoffeeBean, error)
	ListActiveBeans(ctx context.Context, userID uint, page database.Page) ([]database.CoffeeBean, error)
	FindBean(ctx context.Context, userID, id uint) (*database.CoffeeBean, error)
}

// ShotServiceInterface defines the contract for espresso shot operations
type ShotServiceInterface interface {
	CreateShot(ctx context.Context, userID uint, input services.ShotInput) (*database.EspressoShot, error)
	UpdateShot(ctx context.Context, userID, id uint, input services.ShotInput) (*database.EspressoShot, error)
	DeleteShot(ctx context.Context, userID, id uint) error
	ListShots(ctx context.Context, userID uint, page database.Page) ([]database.EspressoShot, error)
	FindShotWithDetails(ctx context.Context, userID, id uint) (*database.EspressoShot, error)
	ReviewShot(ctx context.Context, userID, shotID uint, profile domain.TasteProfile, notes string) (*database.ShotReview, error)
	FindReview(ctx context.Context, userID, shotID uint) (*database.ShotReview, error)
}

// AdviceServiceInterface defines the contract for dial-in guidance
type AdviceServiceInterface interface {
	Advise(shot *database.EspressoShot, review *database.ShotReview) services.Advice
}

// AIServiceInterface defines the contract for taste classification
type AIServiceInterface interface {
	Enabled() bool
	ClassifyTaste(ctx context.Context, description string) (*services.TasteSuggestion, error)
}
