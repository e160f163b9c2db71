package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/clubhub/clubhub/internal/applications"
	"github.com/clubhub/clubhub/internal/auth"
	"github.com/clubhub/clubhub/internal/conferences"
	"github.com/clubhub/clubhub/internal/events"
	"github.com/clubhub/clubhub/internal/members"
	"github.com/clubhub/clubhub/internal/observability"
	"github.com/clubhub/clubhub/internal/projects"
	"github.com/clubhub/clubhub/internal/ratelimit"
	"github.com/clubhub/clubhub/internal/resources"
	"github.com/clubhub/clubhub/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	AuthHandler         *auth.Handler
	AuthMiddleware      auth.Middleware
	MembersHandler      *members.Handler
	EventsHandler       *events.Handler
	ProjectsHandler     *projects.Handler
	ResourcesHandler    *resources.Handler
	ApplicationsHandler *applications.Handler
	ConferencesHandler  *conferences.Handler
	JobHandler          *jobs.Handler
	Limiter             *ratelimit.Limiter
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with ClubHub defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		// Public surface: browsing endpoints and application submission.
		r.Route("/events", params.EventsHandler.MountPublicRoutes)
		r.Route("/projects", params.ProjectsHandler.MountPublicRoutes)
		r.Route("/resources", params.ResourcesHandler.MountPublicRoutes)
		r.Route("/conferences", params.ConferencesHandler.MountPublicRoutes)
		r.Route("/applications", params.ApplicationsHandler.MountPublicRoutes)

		// Admin surface. check-admin reports the outcome of the
		// authorization pipeline instead of guarding a resource, so it
		// registers ahead of the gate; everything in the group below runs
		// the full pipeline on each request.
		r.Route("/admin", func(r chi.Router) {
			params.AuthHandler.MountAdminRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(params.AuthMiddleware.RequireAdmin())

				r.Route("/users", params.MembersHandler.MountRoutes)
				r.Route("/events", params.EventsHandler.MountAdminRoutes)
				r.Route("/projects", params.ProjectsHandler.MountAdminRoutes)
				r.Route("/resources", params.ResourcesHandler.MountAdminRoutes)
				r.Route("/conferences", params.ConferencesHandler.MountAdminRoutes)
				r.Route("/applications", func(r chi.Router) {
					params.ApplicationsHandler.MountAdminRoutes(r, params.Limiter.Middleware)
				})
				if params.JobHandler != nil {
					r.Route("/jobs", params.JobHandler.MountRoutes)
				}
			})
		})
	})

	return r
}
