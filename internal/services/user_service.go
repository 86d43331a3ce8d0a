package services

import (
	"context"

	"github.com/kurrle/espresso-helper/internal/database"
	apperrors "github.com/kurrle/espresso-helper/internal/errors"
)

// UserService resolves Telegram accounts into stored identities. Every
// other service call is scoped to the user id it returns.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// RegisterUser gets or creates the identity for a Telegram account.
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error) {
	if telegramID == 0 {
		return nil, apperrors.ErrNoIdentity
	}
	user, err := s.users.GetOrCreate(ctx, telegramID, username, firstName, lastName)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return user, nil
}

// GetUserByTelegramID resolves a known Telegram account, failing with an
// authentication error when no identity exists for it.
func (s *UserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*database.User, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if user == nil {
		return nil, apperrors.ErrNoIdentity
	}
	return user, nil
}
