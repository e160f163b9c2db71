package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/clubhub/clubhub/internal/identity"
	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger     *slog.Logger
	client     *identity.Client
	middleware Middleware
	validator  *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, client *identity.Client, mw Middleware) *Handler {
	return &Handler{
		logger:     logger,
		client:     client,
		middleware: mw,
		validator:  validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/signup", h.handleSignUp)
	r.Post("/signin", h.handleSignIn)
	r.Post("/signout", h.handleSignOut)
}

// MountAdminRoutes registers the admin self-check endpoint. It belongs
// ahead of the RequireAdmin gate so it can report the outcome instead
// of being swallowed by it.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/check-admin", h.handleCheckAdmin)
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type checkAdminResponse struct {
	IsAdmin bool        `json:"isAdmin"`
	User    *UserRecord `json:"user,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// handleCheckAdmin reports whether the caller's stored role is admin.
// It answers with the same status codes as the gating middleware so the
// endpoint cannot be used to distinguish a missing row from a wrong role.
func (h *Handler) handleCheckAdmin(w http.ResponseWriter, r *http.Request) {
	_, record, err := h.middleware.resolve(r)
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, checkAdminResponse{Error: "valid bearer credential required"})
		return
	}
	if Evaluate(record, RoleAdmin) != DecisionAllow {
		httpx.JSON(w, http.StatusForbidden, checkAdminResponse{Error: "admin access required"})
		return
	}
	httpx.JSON(w, http.StatusOK, checkAdminResponse{IsAdmin: true, User: record})
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}
	session, err := h.client.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("sign up failed", slog.Any("error", err))
		h.respondIdentityError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, session)
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}
	session, err := h.client.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("sign in failed", slog.Any("error", err))
		h.respondIdentityError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, session)
}

func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token, err := BearerToken(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.client.SignOut(r.Context(), token); err != nil {
		h.logger.Warn("sign out failed", slog.Any("error", err))
		h.respondIdentityError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) respondIdentityError(w http.ResponseWriter, err error) {
	// Provider internals stay out of responses either way.
	if errors.Is(err, httpx.ErrInvalidCredential) || errors.Is(err, httpx.ErrProviderUnavailable) {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondError(w, httpx.ErrProviderUnavailable)
}
