package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/store"
)

func TestUserUpsertCreatesOnFirstSight(t *testing.T) {
	st := store.NewMemoryClient()
	svc := NewUserService(st).(*userService)
	svc.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	require.NoError(t, svc.UpsertUser(ctx, "u1", &domain.User{
		Email:       "u@example.com",
		DisplayName: "U",
	}))

	user, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", user.Email)
	assert.Equal(t, "2025-01-01T00:00:00.000Z", user.CreatedAt)
	assert.Equal(t, "2025-01-01T00:00:00.000Z", user.LastLogin)
}

func TestUserUpsertTouchesLastLoginOnly(t *testing.T) {
	st := store.NewMemoryClient()
	svc := NewUserService(st).(*userService)
	ctx := context.Background()

	svc.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, svc.UpsertUser(ctx, "u1", &domain.User{Email: "u@example.com"}))

	svc.now = func() time.Time { return time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, svc.UpsertUser(ctx, "u1", &domain.User{Email: "changed@example.com"}))

	user, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	// CreatedAt is written once; later upserts only move lastLogin.
	assert.Equal(t, "2025-01-01T00:00:00.000Z", user.CreatedAt)
	assert.Equal(t, "2025-02-02T00:00:00.000Z", user.LastLogin)
	assert.Equal(t, "u@example.com", user.Email)
}

func TestUserGetAbsent(t *testing.T) {
	st := store.NewMemoryClient()
	svc := NewUserService(st)

	_, err := svc.GetUser(context.Background(), "ghost")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
