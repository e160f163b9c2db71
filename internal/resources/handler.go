package resources

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Handler manages resource endpoints.
type Handler struct {
	logger    *slog.Logger
	repo      *Repository
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, repo *Repository) *Handler {
	return &Handler{logger: logger, repo: repo, validator: validator.New()}
}

// MountPublicRoutes registers the unauthenticated listing.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.list)
}

// MountAdminRoutes registers admin mutation routes.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type resourceRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	URL   string `json:"url" validate:"required,url"`
	Kind  string `json:"kind" validate:"required,max=50"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	resources, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list resources failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if resources == nil {
		resources = []Resource{}
	}
	httpx.JSON(w, http.StatusOK, resources)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (resourceRequest, bool) {
	var req resourceRequest
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

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	created, err := h.repo.Create(r.Context(), Resource{Title: req.Title, URL: req.URL, Kind: req.Kind})
	if err != nil {
		h.logger.Error("create resource failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid resource id")
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	updated, err := h.repo.Update(r.Context(), id, Resource{Title: req.Title, URL: req.URL, Kind: req.Kind})
	if err != nil {
		h.logger.Error("update resource failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid resource id")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
