package httpx

import (
	"log/slog"
	"net/http"

	"github.com/jobdeck/jobdeck/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs      *service.JobService
	Refresher *service.StatusRefreshService
	Auth      *service.AuthService
	Logger    *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	jobHandlers := &JobHandlers{Svc: services.Jobs, Refresher: services.Refresher}
	authHandlers := &AuthHandlers{Svc: services.Auth}

	registerAuthRoutes(mux, authHandlers)
	registerJobRoutes(mux, jobHandlers, services.Auth)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.Handle("POST /auth/register", http.HandlerFunc(h.Register))
	mux.Handle("POST /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("POST /auth/refresh", http.HandlerFunc(h.Refresh))
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers, auth Authenticator) {
	requireAuth := RequireAuth(auth)

	mux.Handle("POST /jobs", requireAuth(http.HandlerFunc(h.CreateJob)))
	mux.Handle("GET /jobs", requireAuth(http.HandlerFunc(h.ListJobs)))
	mux.Handle("GET /jobs/{id}", requireAuth(http.HandlerFunc(h.GetJob)))
	mux.Handle("PUT /jobs/{id}", requireAuth(http.HandlerFunc(h.UpdateJob)))
	mux.Handle("DELETE /jobs/{id}", requireAuth(http.HandlerFunc(h.DeleteJob)))
	mux.Handle("POST /jobs/update-status", requireAuth(http.HandlerFunc(h.UpdateStatuses)))
}
