package service

import (
	"context"
	"time"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/store"
)

type userService struct {
	store store.Client
	now   func() time.Time
}

// NewUserService creates the user record service.
func NewUserService(s store.Client) domain.UserService {
	return &userService{store: s, now: time.Now}
}

func (s *userService) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	var user domain.User
	if err := s.store.Get(ctx, "users/"+uid, &user); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, domain.Internal(err, "user.get", "failed to load user")
	}
	return &user, nil
}

// UpsertUser creates the record on first sight and touches LastLogin after
// that. CreatedAt is written exactly once.
func (s *userService) UpsertUser(ctx context.Context, uid string, u *domain.User) error {
	const op = "user.upsert"
	now := domain.FormatTime(s.now())

	var existing domain.User
	err := s.store.Get(ctx, "users/"+uid, &existing)
	if err != nil && !store.IsNotFound(err) {
		return domain.Internal(err, op, "failed to load user")
	}

	if store.IsNotFound(err) {
		record := *u
		record.CreatedAt = now
		record.LastLogin = now
		if err := s.store.Set(ctx, "users/"+uid, &record); err != nil {
			return domain.Internal(err, op, "failed to create user")
		}
		return nil
	}

	if err := s.store.Update(ctx, "users/"+uid, map[string]interface{}{
		"lastLogin": now,
	}); err != nil {
		return domain.Internal(err, op, "failed to update user")
	}
	return nil
}
