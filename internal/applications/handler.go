package applications

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Handler wires HTTP endpoints for application workflows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountPublicRoutes registers the submission endpoints.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/membership", h.submitMembership)
	r.Post("/project", h.submitProject)
}

// MountAdminRoutes registers the admin listing and status endpoints.
// The router wraps the listings with the fixed-window rate limiter in
// addition to the admin middleware.
func (h *Handler) MountAdminRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.With(limit).Get("/", h.listMembership)
	r.With(limit).Get("/project", h.listProject)
	r.Put("/{id}/status", h.updateMembershipStatus)
	r.Put("/project/{id}/status", h.updateProjectStatus)
}

func (h *Handler) submitMembership(w http.ResponseWriter, r *http.Request) {
	var req SubmitMembershipRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	app, err := h.service.SubmitMembership(r.Context(), req)
	if err != nil {
		h.logger.Error("submit membership application failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, app)
}

func (h *Handler) submitProject(w http.ResponseWriter, r *http.Request) {
	var req SubmitProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	app, err := h.service.SubmitProject(r.Context(), req)
	if err != nil {
		h.logger.Error("submit project application failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, app)
}

func (h *Handler) listMembership(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListMembership(r.Context())
	if err != nil {
		h.logger.Error("list membership applications failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if apps == nil {
		apps = []MembershipApplication{}
	}
	httpx.JSON(w, http.StatusOK, apps)
}

func (h *Handler) listProject(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListProject(r.Context())
	if err != nil {
		h.logger.Error("list project applications failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if apps == nil {
		apps = []ProjectApplication{}
	}
	httpx.JSON(w, http.StatusOK, apps)
}

func (h *Handler) statusRequest(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid application id")
		return 0, "", false
	}
	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return 0, "", false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return 0, "", false
	}
	return id, req.Status, true
}

func (h *Handler) updateMembershipStatus(w http.ResponseWriter, r *http.Request) {
	id, status, ok := h.statusRequest(w, r)
	if !ok {
		return
	}
	app, err := h.service.UpdateMembershipStatus(r.Context(), id, status)
	if err != nil {
		h.logger.Error("update membership status failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, app)
}

func (h *Handler) updateProjectStatus(w http.ResponseWriter, r *http.Request) {
	id, status, ok := h.statusRequest(w, r)
	if !ok {
		return
	}
	app, err := h.service.UpdateProjectStatus(r.Context(), id, status)
	if err != nil {
		h.logger.Error("update project status failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, app)
}
