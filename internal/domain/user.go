package domain

import "context"

// User is a stored account record under users/{uid}.
// CreatedAt is written once at first sight; LastLogin is touched on every
// later successful credential resolution. Users are never deleted.
type User struct {
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	LastLogin   string `json:"lastLogin,omitempty"`
}

// Principal is the resolved caller identity for a single request.
// It is derived from a credential plus stored user data and never persisted.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// UserService manages stored user records.
type UserService interface {
	// GetUser loads users/{uid}. Returns ENOTFOUND when absent.
	GetUser(ctx context.Context, uid string) (*User, error)

	// UpsertUser creates users/{uid} with CreatedAt set, or touches
	// LastLogin on an existing record. CreatedAt is never rewritten.
	UpsertUser(ctx context.Context, uid string, u *User) error
}
