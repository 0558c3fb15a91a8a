package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// Claims is the identity payload a verifier extracts from a token.
type Claims struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// TokenVerifier checks structured tokens against a trusted authority.
// Implementations must return an error rather than claims they could not
// cryptographically verify; the resolver handles the unverified fallback.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (*Claims, error)
	VerifySessionCookie(ctx context.Context, cookie string) (*Claims, error)
}

// FirebaseVerifier adapts the Firebase Auth client to TokenVerifier.
type FirebaseVerifier struct {
	auth *auth.Client
}

// NewFirebaseVerifier wraps an initialized auth client.
func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{auth: client}
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, token string) (*Claims, error) {
	t, err := v.auth.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	return claimsFromToken(t), nil
}

func (v *FirebaseVerifier) VerifySessionCookie(ctx context.Context, cookie string) (*Claims, error) {
	t, err := v.auth.VerifySessionCookie(ctx, cookie)
	if err != nil {
		return nil, fmt.Errorf("verify session cookie: %w", err)
	}
	return claimsFromToken(t), nil
}

func claimsFromToken(t *auth.Token) *Claims {
	c := &Claims{UID: t.UID}
	if s, ok := t.Claims["email"].(string); ok {
		c.Email = s
	}
	if s, ok := t.Claims["name"].(string); ok {
		c.Name = s
	}
	if s, ok := t.Claims["picture"].(string); ok {
		c.Picture = s
	}
	return c
}
