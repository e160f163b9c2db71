package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubhub/clubhub/internal/auth"
	"github.com/clubhub/clubhub/internal/identity"
	"github.com/clubhub/clubhub/internal/platform/httpx"
	_ "github.com/clubhub/clubhub/testing"
)

type stubVerifier struct {
	principal *identity.Principal
	err       error
	calls     int
}

func (s *stubVerifier) VerifyToken(ctx context.Context, token string) (*identity.Principal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

type stubRepo struct {
	record *auth.UserRecord
	err    error
	calls  int
}

func (s *stubRepo) FindByID(ctx context.Context, id string) (*auth.UserRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func serveAdmin(t *testing.T, mw auth.Middleware, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	reached := false
	handler := mw.RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res, reached
}

func TestRequireAdminNoHeader(t *testing.T) {
	verifier := &stubVerifier{}
	repo := &stubRepo{}
	mw := auth.Middleware{Verifier: verifier, Repo: repo}

	res, reached := serveAdmin(t, mw, "")

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if reached {
		t.Fatal("handler must not run without a credential")
	}
	if verifier.calls != 0 {
		t.Fatalf("verifier must not be consulted, got %d calls", verifier.calls)
	}
	if repo.calls != 0 {
		t.Fatalf("store must not be consulted, got %d calls", repo.calls)
	}
}

func TestRequireAdminInvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: httpx.ErrInvalidCredential}
	repo := &stubRepo{}
	mw := auth.Middleware{Verifier: verifier, Repo: repo}

	res, reached := serveAdmin(t, mw, "Bearer expired-token")

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if reached {
		t.Fatal("handler must not run for a rejected token")
	}
	if repo.calls != 0 {
		t.Fatalf("store must not be consulted after rejection, got %d calls", repo.calls)
	}
}

func TestRequireAdminProviderDown(t *testing.T) {
	verifier := &stubVerifier{err: httpx.ErrProviderUnavailable}
	mw := auth.Middleware{Verifier: verifier, Repo: &stubRepo{}}

	res, reached := serveAdmin(t, mw, "Bearer some-token")

	// Provider failure is indistinguishable from a bad token on the wire.
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if reached {
		t.Fatal("handler must not run when the provider is unreachable")
	}
}

func TestRequireAdminNoUsersRow(t *testing.T) {
	verifier := &stubVerifier{principal: &identity.Principal{ID: "u1", Email: "new@test.local"}}
	repo := &stubRepo{err: httpx.ErrNotFound}
	mw := auth.Middleware{Verifier: verifier, Repo: repo}

	res, reached := serveAdmin(t, mw, "Bearer good-token")

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
	if reached {
		t.Fatal("handler must not run without a users row")
	}
}

func TestRequireAdminWrongRole(t *testing.T) {
	verifier := &stubVerifier{principal: &identity.Principal{ID: "u1", Email: "member@test.local"}}
	repo := &stubRepo{record: &auth.UserRecord{ID: "u1", Email: "member@test.local", Role: auth.RoleMember}}
	mw := auth.Middleware{Verifier: verifier, Repo: repo}

	res, reached := serveAdmin(t, mw, "Bearer good-token")

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
	if reached {
		t.Fatal("handler must not run for a non-admin")
	}
}

func TestRequireAdminStoreFailureFailsClosed(t *testing.T) {
	verifier := &stubVerifier{principal: &identity.Principal{ID: "u1", Email: "admin@test.local"}}
	repo := &stubRepo{err: errors.New("connection refused")}
	mw := auth.Middleware{Verifier: verifier, Repo: repo}

	res, reached := serveAdmin(t, mw, "Bearer good-token")

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on store failure, got %d", res.Code)
	}
	if reached {
		t.Fatal("handler must not run when the role lookup fails")
	}
}

func TestRequireAdminAllows(t *testing.T) {
	verifier := &stubVerifier{principal: &identity.Principal{ID: "u1", Email: "admin@test.local"}}
	repo := &stubRepo{record: &auth.UserRecord{ID: "u1", Email: "admin@test.local", Role: auth.RoleAdmin}}
	mw := auth.Middleware{Verifier: verifier, Repo: repo}

	var gotPrincipal *identity.Principal
	var gotRecord *auth.UserRecord
	handler := mw.RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal = auth.PrincipalFromContext(r.Context())
		gotRecord = auth.RecordFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if gotPrincipal == nil || gotPrincipal.ID != "u1" {
		t.Fatalf("expected principal in context, got %+v", gotPrincipal)
	}
	if gotRecord == nil || gotRecord.Role != auth.RoleAdmin {
		t.Fatalf("expected admin record in context, got %+v", gotRecord)
	}
}

func TestRequireAdminChecksEveryRequest(t *testing.T) {
	verifier := &stubVerifier{principal: &identity.Principal{ID: "u1", Email: "admin@test.local"}}
	repo := &stubRepo{record: &auth.UserRecord{ID: "u1", Email: "admin@test.local", Role: auth.RoleAdmin}}
	mw := auth.Middleware{Verifier: verifier, Repo: repo}

	for i := 0; i < 3; i++ {
		res, _ := serveAdmin(t, mw, "Bearer good-token")
		if res.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, res.Code)
		}
	}

	// Role changes take effect immediately because nothing is cached.
	repo.record = &auth.UserRecord{ID: "u1", Email: "admin@test.local", Role: auth.RoleMember}
	res, _ := serveAdmin(t, mw, "Bearer good-token")
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 after demotion, got %d", res.Code)
	}
	if verifier.calls != 4 {
		t.Fatalf("expected 4 verifier calls, got %d", verifier.calls)
	}
	if repo.calls != 4 {
		t.Fatalf("expected 4 lookups, got %d", repo.calls)
	}
}
