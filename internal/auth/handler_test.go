package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/clubhub/clubhub/internal/auth"
	"github.com/clubhub/clubhub/internal/identity"
	"github.com/clubhub/clubhub/internal/platform/httpx"
	_ "github.com/clubhub/clubhub/testing"
)

func checkAdmin(t *testing.T, mw auth.Middleware, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	handler := auth.NewHandler(nil, nil, mw)
	r := chi.NewRouter()
	handler.MountAdminRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/check-admin", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func TestCheckAdminWithoutCredential(t *testing.T) {
	mw := auth.Middleware{Verifier: &stubVerifier{}, Repo: &stubRepo{}}

	res := checkAdmin(t, mw, "")
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestCheckAdminNonAdmin(t *testing.T) {
	mw := auth.Middleware{
		Verifier: &stubVerifier{principal: &identity.Principal{ID: "u1", Email: "m@test.local"}},
		Repo:     &stubRepo{record: &auth.UserRecord{ID: "u1", Email: "m@test.local", Role: auth.RoleMember}},
	}

	res := checkAdmin(t, mw, "Bearer good-token")
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
	var body struct {
		IsAdmin bool   `json:"isAdmin"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.IsAdmin {
		t.Fatal("expected isAdmin false")
	}
}

func TestCheckAdminMissingRowMatchesWrongRole(t *testing.T) {
	// A principal without a users row must get the same answer as one
	// with the wrong role.
	mw := auth.Middleware{
		Verifier: &stubVerifier{principal: &identity.Principal{ID: "u1", Email: "new@test.local"}},
		Repo:     &stubRepo{err: httpx.ErrNotFound},
	}

	res := checkAdmin(t, mw, "Bearer good-token")
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

func TestCheckAdminOK(t *testing.T) {
	mw := auth.Middleware{
		Verifier: &stubVerifier{principal: &identity.Principal{ID: "u1", Email: "admin@test.local"}},
		Repo:     &stubRepo{record: &auth.UserRecord{ID: "u1", Email: "admin@test.local", Role: auth.RoleAdmin}},
	}

	res := checkAdmin(t, mw, "Bearer good-token")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var body struct {
		IsAdmin bool             `json:"isAdmin"`
		User    *auth.UserRecord `json:"user"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.IsAdmin {
		t.Fatal("expected isAdmin true")
	}
	if body.User == nil || body.User.ID != "u1" {
		t.Fatalf("expected user record in body, got %+v", body.User)
	}
}
