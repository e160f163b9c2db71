package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer. Every handler maps its failures
// onto one of these before responding; RespondError is the single place
// that turns them into status codes.
var (
	// ErrMissingCredential indicates an absent or malformed Authorization header.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential indicates the identity provider rejected the token.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrProviderUnavailable indicates the identity provider call itself failed.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	// ErrForbidden indicates an authenticated principal without the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates a required field was missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrStore indicates a data store failure, constraint violation included.
	ErrStore = errors.New("store error")
	// ErrRateLimited indicates the fixed-window ceiling was hit.
	ErrRateLimited = errors.New("rate limited")
)

// RespondError maps domain errors to HTTP responses.
//
// Missing credential, invalid credential and provider failure all
// collapse to 401 so callers cannot tell which one occurred; logs keep
// the distinction.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingCredential),
		errors.Is(err, ErrInvalidCredential),
		errors.Is(err, ErrProviderUnavailable):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "valid bearer credential required")
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", "admin access required")
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrRateLimited):
		Problem(w, http.StatusTooManyRequests, "Rate Limited", "too many requests, retry later")
	case errors.Is(err, ErrStore):
		Problem(w, http.StatusInternalServerError, "Store Error", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
