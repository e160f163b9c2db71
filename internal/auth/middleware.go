package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/clubhub/clubhub/internal/identity"
	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Verifier exchanges a bearer token for a verified principal.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*identity.Principal, error)
}

// Middleware wires the authorization pipeline for HTTP handlers:
// extract credential, verify with the provider, look up the stored
// role, evaluate policy. The pipeline runs on every request; decisions
// are never cached because roles can change between requests.
type Middleware struct {
	Verifier Verifier
	Repo     Repository
	Logger   *slog.Logger
}

// RequireAdmin grants access only to principals whose users row carries
// the admin role.
func (m Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return m.RequireRole(RoleAdmin)
}

// RequireRole ensures the current principal's stored role equals the
// required role. Failures before verification respond 401; everything
// after an authenticated principal, including store read failures,
// collapses to 403 so a missing row cannot be told apart from a wrong
// role.
func (m Middleware) RequireRole(required Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, record, err := m.resolve(r)
			if err != nil {
				httpx.RespondError(w, err)
				return
			}
			if Evaluate(record, required) != DecisionAllow {
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			ctx := ContextWithPrincipal(r.Context(), principal)
			ctx = ContextWithRecord(ctx, record)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolve runs extract, verify and the role lookup. It returns a nil
// record (without error) when the principal has no users row, and fails
// closed on any store read failure.
func (m Middleware) resolve(r *http.Request) (*identity.Principal, *UserRecord, error) {
	token, err := BearerToken(r)
	if err != nil {
		return nil, nil, err
	}

	principal, err := m.Verifier.VerifyToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, httpx.ErrProviderUnavailable) {
			m.logError("identity provider unreachable", err)
		} else {
			m.logWarn("bearer token rejected", err)
		}
		return nil, nil, err
	}

	record, err := m.Repo.FindByID(r.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return principal, nil, nil
		}
		m.logError("role lookup failed", err)
		return nil, nil, httpx.ErrForbidden
	}
	return principal, record, nil
}

func (m Middleware) logWarn(msg string, err error) {
	if m.Logger != nil {
		m.Logger.Warn(msg, slog.Any("error", err))
	}
}

func (m Middleware) logError(msg string, err error) {
	if m.Logger != nil {
		m.Logger.Error(msg, slog.Any("error", err))
	}
}
