package identity

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/telemetry"
)

// Source says where a credential was carried, which decides the order
// trusted verification is attempted in.
type Source int

const (
	// SourceHeader is an Authorization bearer token.
	SourceHeader Source = iota

	// SourceCookie is the session cookie set at login.
	SourceCookie
)

// Resolution strategies, in the order the chain tries them.
const (
	StrategyLocal    = "local"
	StrategyVerified = "verified"
	StrategyDecoded  = "decoded"
)

// Resolution is the outcome of a successful credential resolution.
type Resolution struct {
	Principal domain.Principal

	// Strategy names which step of the chain produced the principal.
	Strategy string

	// Persisted is false when the best-effort user record upsert failed.
	// The resolution itself still stands.
	Persisted bool
}

// Resolver turns raw credentials into principals via a fixed strategy
// chain: local token lookup, trusted verification, then an unverified
// claim decode backed by a stored user record.
type Resolver struct {
	users    domain.UserService
	verifier TokenVerifier
	logger   *slog.Logger
	metrics  *telemetry.Business
	now      func() time.Time
}

// NewResolver creates a resolver. verifier may be nil when no trusted
// authority is configured; the chain then goes straight to the decode
// fallback for structured tokens.
func NewResolver(users domain.UserService, verifier TokenVerifier, logger *slog.Logger, metrics *telemetry.Business) *Resolver {
	return &Resolver{
		users:    users,
		verifier: verifier,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Resolve authenticates a raw credential. Local tokens and the decode
// fallback require a stored user record; only trusted verification can
// vouch for a caller this service has never seen.
func (r *Resolver) Resolve(ctx context.Context, raw string, source Source) (*Resolution, error) {
	const op = "identity.resolve"

	if raw == "" {
		return nil, domain.Unauthorized(op, "No authentication token provided")
	}

	cred := ParseCredential(raw)
	switch cred.Kind {
	case KindLocal:
		if cred.UID == "" {
			r.metrics.AuthResolution(StrategyLocal, "error")
			return nil, domain.Unauthorized(op, "Invalid authentication token")
		}
		return r.resolveLocal(ctx, op, cred.UID)
	default:
		// Anything that is not a local token goes through the verify and
		// decode chain and fails with its message.
		return r.resolveStructured(ctx, op, raw, source)
	}
}

// resolveLocal looks up the uid embedded in a locally minted token.
// It never falls through to another strategy.
func (r *Resolver) resolveLocal(ctx context.Context, op, uid string) (*Resolution, error) {
	user, err := r.users.GetUser(ctx, uid)
	if err != nil {
		r.metrics.AuthResolution(StrategyLocal, "error")
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, domain.Unauthorized(op, "Invalid authentication token")
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}

	res := &Resolution{
		Principal: domain.Principal{
			UID:         uid,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			PhotoURL:    user.PhotoURL,
		},
		Strategy: StrategyLocal,
	}
	res.Persisted = r.upsert(ctx, res.Principal)
	r.metrics.AuthResolution(StrategyLocal, "ok")
	return res, nil
}

// resolveStructured tries the trusted verifier, then falls back to decoding
// the claims without verification. The fallback only succeeds for callers
// with an existing user record.
func (r *Resolver) resolveStructured(ctx context.Context, op, raw string, source Source) (*Resolution, error) {
	if claims, err := r.verify(ctx, raw, source); err == nil {
		res := &Resolution{
			Principal: domain.Principal{
				UID:         claims.UID,
				Email:       claims.Email,
				DisplayName: claims.Name,
				PhotoURL:    claims.Picture,
			},
			Strategy: StrategyVerified,
		}
		res.Persisted = r.upsert(ctx, res.Principal)
		r.metrics.AuthResolution(StrategyVerified, "ok")
		return res, nil
	}

	claims, err := decodeClaims(raw)
	if err != nil || claims.UID == "" {
		r.metrics.AuthResolution(StrategyDecoded, "error")
		return nil, domain.Unauthorized(op, "Invalid or expired authentication token")
	}

	user, err := r.users.GetUser(ctx, claims.UID)
	if err != nil {
		r.metrics.AuthResolution(StrategyDecoded, "error")
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, domain.Unauthorized(op, "Invalid or expired authentication token")
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}

	// Decoded display fields win over stored ones when present; the token
	// is fresher than the record.
	principal := domain.Principal{
		UID:         claims.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
	if claims.Email != "" {
		principal.Email = claims.Email
	}
	if claims.Name != "" {
		principal.DisplayName = claims.Name
	}
	if claims.Picture != "" {
		principal.PhotoURL = claims.Picture
	}

	res := &Resolution{Principal: principal, Strategy: StrategyDecoded}
	res.Persisted = r.upsert(ctx, res.Principal)
	r.metrics.AuthResolution(StrategyDecoded, "ok")
	return res, nil
}

// verify runs the trusted checks. Cookies are checked as session cookies
// first since that is what login mints; both carriers fall back to the id
// token check because clients sometimes put id tokens in the cookie.
func (r *Resolver) verify(ctx context.Context, raw string, source Source) (*Claims, error) {
	if r.verifier == nil {
		return nil, fmt.Errorf("no token verifier configured")
	}

	if source == SourceCookie {
		if claims, err := r.verifier.VerifySessionCookie(ctx, raw); err == nil {
			return claims, nil
		}
	}
	return r.verifier.VerifyIDToken(ctx, raw)
}

// Login resolves a structured sign-in token and mints a local session token
// for it. Unlike Resolve, the decode fallback here synthesizes the user
// instead of requiring a stored record, because login is exactly the moment
// a first-time caller appears.
func (r *Resolver) Login(ctx context.Context, idToken string) (*Resolution, string, error) {
	const op = "identity.login"

	if idToken == "" {
		return nil, "", domain.Invalid(op, "ID token is required")
	}

	if ParseCredential(idToken).Kind != KindStructured {
		return nil, "", domain.Invalid(op, "Invalid token format")
	}

	var claims *Claims
	strategy := StrategyVerified
	claims, err := r.verify(ctx, idToken, SourceHeader)
	if err != nil {
		strategy = StrategyDecoded
		claims, err = decodeClaims(idToken)
		if err != nil {
			r.metrics.AuthResolution(strategy, "error")
			return nil, "", domain.Unauthorized(op, "Authentication failed: Invalid token")
		}
		if claims.UID == "" {
			r.metrics.AuthResolution(strategy, "error")
			return nil, "", domain.Invalid(op, "Invalid token payload")
		}
	}

	principal := domain.Principal{
		UID:         claims.UID,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}
	if principal.DisplayName == "" {
		if at := strings.Index(principal.Email, "@"); at > 0 {
			principal.DisplayName = principal.Email[:at]
		} else {
			principal.DisplayName = "User"
		}
	}

	res := &Resolution{Principal: principal, Strategy: strategy}
	res.Persisted = r.upsert(ctx, principal)
	r.metrics.AuthResolution(strategy, "ok")

	token := fmt.Sprintf("auth_%d_%s", r.now().UnixMilli(), principal.UID)
	return res, token, nil
}

// upsert writes the user record best-effort. A store failure is logged and
// counted but never fails the resolution.
func (r *Resolver) upsert(ctx context.Context, p domain.Principal) bool {
	err := r.users.UpsertUser(ctx, p.UID, &domain.User{
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
	})
	if err != nil {
		r.logger.Warn("user upsert failed",
			slog.String("uid", p.UID),
			slog.String("error", err.Error()))
		r.metrics.UserUpsertFailure()
		return false
	}
	return true
}

// decodeClaims reads a structured token's payload without checking its
// signature. The uid is taken from the first populated of the user_id, sub,
// and uid claims.
func decodeClaims(raw string) (*Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("not a structured token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	var body struct {
		UserID  string `json:"user_id"`
		Sub     string `json:"sub"`
		UID     string `json:"uid"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}

	uid := body.UserID
	if uid == "" {
		uid = body.Sub
	}
	if uid == "" {
		uid = body.UID
	}

	return &Claims{
		UID:     uid,
		Email:   body.Email,
		Name:    body.Name,
		Picture: body.Picture,
	}, nil
}
