package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kurrle/espresso-helper/internal/errors"
)

func TestRegisterUserIsIdempotent(t *testing.T) {
	svc := NewUserService(newMemUserStore())
	ctx := context.Background()

	first, err := svc.RegisterUser(ctx, 42, "ava", "Ava", "L")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	again, err := svc.RegisterUser(ctx, 42, "ava", "Ava", "L")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID, "same telegram account resolves to same identity")
}

func TestRegisterUserRejectsZeroTelegramID(t *testing.T) {
	svc := NewUserService(newMemUserStore())

	_, err := svc.RegisterUser(context.Background(), 0, "", "", "")
	assert.ErrorIs(t, err, apperrors.ErrNoIdentity)
}

func TestGetUserByTelegramID(t *testing.T) {
	svc := NewUserService(newMemUserStore())
	ctx := context.Background()

	created, err := svc.RegisterUser(ctx, 42, "ava", "Ava", "L")
	require.NoError(t, err)

	found, err := svc.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetUserByTelegramID(ctx, 43)
	assert.ErrorIs(t, err, apperrors.ErrNoIdentity)
}
