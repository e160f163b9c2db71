package auth

import (
	"net/http"
	"strings"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

const bearerPrefix = "Bearer "

// BearerToken returns the credential after the case-sensitive "Bearer "
// prefix of the Authorization header. A missing header or one without
// that exact prefix fails with httpx.ErrMissingCredential. Pure parse,
// no I/O.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", httpx.ErrMissingCredential
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", httpx.ErrMissingCredential
	}
	return token, nil
}
