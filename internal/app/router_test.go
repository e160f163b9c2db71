package app_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clubhub/clubhub/internal/app"
	"github.com/clubhub/clubhub/internal/applications"
	"github.com/clubhub/clubhub/internal/auth"
	"github.com/clubhub/clubhub/internal/conferences"
	"github.com/clubhub/clubhub/internal/events"
	"github.com/clubhub/clubhub/internal/identity"
	"github.com/clubhub/clubhub/internal/members"
	"github.com/clubhub/clubhub/internal/projects"
	"github.com/clubhub/clubhub/internal/ratelimit"
	"github.com/clubhub/clubhub/internal/resources"
	_ "github.com/clubhub/clubhub/testing"
)

type stubVerifier struct {
	principal *identity.Principal
	err       error
}

func (s *stubVerifier) VerifyToken(_ context.Context, _ string) (*identity.Principal, error) {
	return s.principal, s.err
}

type stubRepo struct {
	record *auth.UserRecord
	err    error
}

func (s *stubRepo) FindByID(_ context.Context, _ string) (*auth.UserRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

// newTestRouter builds the full router over stubbed auth dependencies.
// Handlers carry nil services: only routes that never reach a service
// are exercised here.
func newTestRouter(mw auth.Middleware) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return app.NewRouter(app.RouterParams{
		Logger:              logger,
		AuthHandler:         auth.NewHandler(logger, nil, mw),
		AuthMiddleware:      mw,
		MembersHandler:      members.NewHandler(logger, nil),
		EventsHandler:       events.NewHandler(logger, nil),
		ProjectsHandler:     projects.NewHandler(logger, nil),
		ResourcesHandler:    resources.NewHandler(logger, nil),
		ApplicationsHandler: applications.NewHandler(logger, nil),
		ConferencesHandler:  conferences.NewHandler(logger, nil),
		Limiter:             ratelimit.New(time.Minute, 100),
	})
}

func adminMiddleware(role auth.Role) auth.Middleware {
	return auth.Middleware{
		Verifier: &stubVerifier{principal: &identity.Principal{ID: "u1", Email: "u1@test.local"}},
		Repo:     &stubRepo{record: &auth.UserRecord{ID: "u1", Email: "u1@test.local", Role: role}},
	}
}

func TestRouterCheckAdminPathAsAdmin(t *testing.T) {
	router := newTestRouter(adminMiddleware(auth.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/check-admin", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var body struct {
		IsAdmin bool `json:"isAdmin"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.IsAdmin {
		t.Fatal("expected isAdmin true")
	}
}

func TestRouterCheckAdminPathAsMember(t *testing.T) {
	// check-admin sits ahead of the RequireAdmin gate so it reports 403
	// itself instead of the route disappearing behind the gate.
	router := newTestRouter(adminMiddleware(auth.RoleMember))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/check-admin", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

func TestRouterCheckAdminPathWithoutCredential(t *testing.T) {
	router := newTestRouter(adminMiddleware(auth.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/check-admin", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestRouterAdminGateStillGuardsResources(t *testing.T) {
	router := newTestRouter(adminMiddleware(auth.RoleMember))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}
