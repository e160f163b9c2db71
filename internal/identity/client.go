// Package identity wraps the hosted identity provider's HTTP API.
//
// The provider owns credentials and token issuance; this service only
// exchanges bearer tokens for verified principals and proxies the
// sign-up/sign-in/sign-out flows.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Principal is the verified identity behind a bearer token. It lives
// only for the duration of one request.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the token payload returned by the provider on sign-in.
type Session struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	User         Principal `json:"user"`
}

// Client calls the identity provider over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient constructs a provider client. The http.Client's defaults
// govern timeouts; VerifyToken is the only network hop in the
// authorization path and callers must not assume it returns quickly.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// VerifyToken exchanges a raw bearer token for a verified principal.
//
// A 4xx from the provider means the token is invalid, expired or
// malformed (httpx.ErrInvalidCredential); a transport failure or 5xx
// means the provider itself is unavailable (httpx.ErrProviderUnavailable).
func (c *Client) VerifyToken(ctx context.Context, token string) (*Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: verify token: %v: %w", err, httpx.ErrProviderUnavailable)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
	case res.StatusCode >= 400 && res.StatusCode < 500:
		return nil, fmt.Errorf("identity: provider status %d: %w", res.StatusCode, httpx.ErrInvalidCredential)
	default:
		return nil, fmt.Errorf("identity: provider status %d: %w", res.StatusCode, httpx.ErrProviderUnavailable)
	}

	var principal Principal
	if err := json.NewDecoder(res.Body).Decode(&principal); err != nil {
		return nil, fmt.Errorf("identity: decode principal: %w", httpx.ErrProviderUnavailable)
	}
	if principal.ID == "" {
		return nil, fmt.Errorf("identity: empty principal id: %w", httpx.ErrInvalidCredential)
	}
	return &principal, nil
}

// SignUp registers a new account with the provider.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.tokenRequest(ctx, c.baseURL+"/auth/v1/signup", email, password)
}

// SignIn exchanges email/password credentials for a token session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.tokenRequest(ctx, c.baseURL+"/auth/v1/token?grant_type=password", email, password)
}

// SignOut revokes the given access token with the provider.
func (c *Client) SignOut(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity: sign out: %v: %w", err, httpx.ErrProviderUnavailable)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode >= 400 && res.StatusCode < 500 {
		return fmt.Errorf("identity: provider status %d: %w", res.StatusCode, httpx.ErrInvalidCredential)
	}
	if res.StatusCode >= 500 {
		return fmt.Errorf("identity: provider status %d: %w", res.StatusCode, httpx.ErrProviderUnavailable)
	}
	return nil
}

func (c *Client) tokenRequest(ctx context.Context, url, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("identity: encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: token request: %v: %w", err, httpx.ErrProviderUnavailable)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
	case res.StatusCode >= 400 && res.StatusCode < 500:
		return nil, fmt.Errorf("identity: provider status %d: %w", res.StatusCode, httpx.ErrInvalidCredential)
	default:
		return nil, fmt.Errorf("identity: provider status %d: %w", res.StatusCode, httpx.ErrProviderUnavailable)
	}

	var session Session
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("identity: decode session: %w", httpx.ErrProviderUnavailable)
	}
	return &session, nil
}
