package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/handler"
	"github.com/hearthside/vesta/internal/identity"
)

type contextKey string

const (
	// PrincipalContextKey is the context key for the resolved caller.
	PrincipalContextKey contextKey = "principal"

	// SessionCookieName is the cookie the login endpoint sets.
	SessionCookieName = "session"
)

// Authenticator resolves a raw credential into a caller identity.
type Authenticator interface {
	Resolve(ctx context.Context, raw string, source identity.Source) (*identity.Resolution, error)
}

// RequireAuth authenticates the request and puts the resolved principal into
// the context. The bearer header wins over the session cookie when both are
// present. Unauthenticated requests get a 401 JSON body.
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, source, ok := extractCredential(r)
			if !ok {
				handler.Error(w, domain.Unauthorized("middleware.auth", "No authentication token provided"))
				return
			}

			res, err := auth.Resolve(r.Context(), raw, source)
			if err != nil {
				handler.Error(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalContextKey, &res.Principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractCredential pulls the raw token off the request.
func extractCredential(r *http.Request) (string, identity.Source, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		raw := strings.TrimPrefix(h, "Bearer ")
		raw = strings.TrimSpace(raw)
		if raw != "" {
			return raw, identity.SourceHeader, true
		}
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, identity.SourceCookie, true
	}

	return "", identity.SourceHeader, false
}

// GetPrincipal retrieves the authenticated caller from the context.
// Returns nil on routes that did not pass through RequireAuth.
func GetPrincipal(ctx context.Context) *domain.Principal {
	p, ok := ctx.Value(PrincipalContextKey).(*domain.Principal)
	if !ok {
		return nil
	}
	return p
}
