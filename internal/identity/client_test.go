package identity_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubhub/clubhub/internal/identity"
	"github.com/clubhub/clubhub/internal/platform/httpx"
	_ "github.com/clubhub/clubhub/testing"
)

func TestVerifyTokenOK(t *testing.T) {
	var gotAuth, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","email":"member@test.local"}`))
	}))
	defer srv.Close()

	client := identity.NewClient(srv.URL, "anon-key", srv.Client())
	principal, err := client.VerifyToken(context.Background(), "raw-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal.ID != "user-1" || principal.Email != "member@test.local" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if gotAuth != "Bearer raw-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotKey != "anon-key" {
		t.Fatalf("expected apikey header, got %q", gotKey)
	}
}

func TestVerifyTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := identity.NewClient(srv.URL, "anon-key", srv.Client())
	_, err := client.VerifyToken(context.Background(), "expired")
	if !errors.Is(err, httpx.ErrInvalidCredential) {
		t.Fatalf("expected invalid credential, got %v", err)
	}
}

func TestVerifyTokenProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := identity.NewClient(srv.URL, "anon-key", srv.Client())
	_, err := client.VerifyToken(context.Background(), "token")
	if !errors.Is(err, httpx.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

func TestVerifyTokenTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := identity.NewClient(srv.URL, "anon-key", nil)
	_, err := client.VerifyToken(context.Background(), "token")
	if !errors.Is(err, httpx.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

func TestVerifyTokenEmptyPrincipal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := identity.NewClient(srv.URL, "anon-key", srv.Client())
	_, err := client.VerifyToken(context.Background(), "token")
	if !errors.Is(err, httpx.ErrInvalidCredential) {
		t.Fatalf("expected invalid credential for empty id, got %v", err)
	}
}

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Fatalf("unexpected request %s %s", r.URL.Path, r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600,"user":{"id":"user-1","email":"member@test.local"}}`))
	}))
	defer srv.Close()

	client := identity.NewClient(srv.URL, "anon-key", srv.Client())
	session, err := client.SignIn(context.Background(), "member@test.local", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.AccessToken != "tok" || session.User.ID != "user-1" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestSignInBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := identity.NewClient(srv.URL, "anon-key", srv.Client())
	_, err := client.SignIn(context.Background(), "member@test.local", "wrong")
	if !errors.Is(err, httpx.ErrInvalidCredential) {
		t.Fatalf("expected invalid credential, got %v", err)
	}
}
