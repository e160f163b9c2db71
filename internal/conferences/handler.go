package conferences

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Handler manages conference registration endpoints.
type Handler struct {
	logger    *slog.Logger
	repo      *Repository
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, repo *Repository) *Handler {
	return &Handler{logger: logger, repo: repo, validator: validator.New()}
}

// MountPublicRoutes registers the public registration endpoint.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/", h.register)
}

// MountAdminRoutes registers the admin listing.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/", h.list)
}

type registerRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Conference string `json:"conference" validate:"required,max=200"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.repo.Create(r.Context(), Registration{
		Name:       req.Name,
		Email:      req.Email,
		Conference: req.Conference,
	})
	if err != nil {
		h.logger.Error("create registration failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	regs, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list registrations failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if regs == nil {
		regs = []Registration{}
	}
	httpx.JSON(w, http.StatusOK, regs)
}
