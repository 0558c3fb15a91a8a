package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hearthside/vesta/internal/handler"
	"github.com/hearthside/vesta/internal/identity"
	"github.com/hearthside/vesta/internal/middleware"
)

// sessionCookieMaxAge matches the lifetime of the minted session token.
const sessionCookieMaxAge = 5 * 24 * 60 * 60 // 5 days in seconds

// LoginService is the slice of the resolver the auth endpoints need.
type LoginService interface {
	Login(ctx context.Context, idToken string) (*identity.Resolution, string, error)
}

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	login        LoginService
	logger       *slog.Logger
	secureCookie bool
}

// NewAuthHandler creates the auth endpoint handler. secureCookie should be
// true everywhere the API is served over HTTPS.
func NewAuthHandler(login LoginService, logger *slog.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{login: login, logger: logger, secureCookie: secureCookie}
}

// GoogleAuth handles POST /api/auth/google. The client sends the Google
// sign-in ID token; the response carries a locally minted session token and
// the same value goes into the session cookie.
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDToken string `json:"idToken" validate:"required"`
	}
	if err := decodeJSON(r, "auth.google", &body, map[string]string{
		"IDToken": "ID token is required",
	}); err != nil {
		handler.Error(w, err)
		return
	}

	res, token, err := h.login.Login(r.Context(), body.IDToken)
	if err != nil {
		handler.Error(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	message := "Authentication successful"
	if !res.Persisted {
		message += " (user data stored locally)"
	}

	h.logger.Info("user authenticated",
		slog.String("uid", res.Principal.UID),
		slog.String("strategy", res.Strategy))

	handler.JSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"user":    res.Principal,
		"token":   token,
	})
}

// Login handles POST /api/auth/login. Password auth happens client-side
// against Firebase; the server only points callers there.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	// Body problems fall through to the missing-credentials message.
	json.NewDecoder(r.Body).Decode(&body)

	if body.Email == "" || body.Password == "" {
		handler.JSON(w, http.StatusBadRequest, map[string]string{
			"message": "Email and password are required",
		})
		return
	}

	handler.JSON(w, http.StatusBadRequest, map[string]string{
		"message": "Please use Google authentication or client-side Firebase auth",
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	handler.JSON(w, http.StatusOK, map[string]interface{}{"user": principal})
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
// Locally minted tokens are not tracked server-side, so there is nothing
// else to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	handler.JSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}
