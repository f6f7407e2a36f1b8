package httpx

import (
	"log/slog"
	"net/http"

	"github.com/irishmetals/skipdispatch/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Lifecycle *service.JobLifecycleService
	// Events serves the live job event websocket. Optional.
	Events http.Handler
	// DriverRateLimit throttles the unauthenticated magic-link routes.
	DriverRateLimit RateLimitConfig
	Logger          *slog.Logger
}

// NewRouter creates the API router wrapped in recovery and request logging.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	registerSkipJobRoutes(mux, &SkipJobHandlers{Svc: services.Lifecycle, Logger: logger})
	registerDriverRoutes(mux, &DriverHandlers{Svc: services.Lifecycle, Logger: logger}, RateLimit(services.DriverRateLimit))
	registerReferenceRoutes(mux, &ReferenceHandlers{Svc: services.Lifecycle, Logger: logger})
	if services.Events != nil {
		mux.Handle("GET /api/events", services.Events)
	}
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Recover(logger)(Logging(logger)(mux))
}

func registerSkipJobRoutes(mux *http.ServeMux, h *SkipJobHandlers) {
	mux.HandleFunc("POST /api/skip-jobs", h.Create)
	mux.HandleFunc("GET /api/skip-jobs", h.List)
	mux.HandleFunc("GET /api/skip-jobs/{id}", h.Get)
	mux.HandleFunc("PATCH /api/skip-jobs/{id}", h.Update)
	mux.HandleFunc("DELETE /api/skip-jobs/{id}", h.Delete)
	mux.HandleFunc("GET /api/skip-jobs/{id}/history", h.History)
	mux.HandleFunc("GET /api/skip-jobs/{id}/docket", h.Docket)
	mux.HandleFunc("POST /api/skip-jobs/{id}/send", h.Send)
	mux.HandleFunc("POST /api/skip-jobs/{id}/start", h.Start)
	mux.HandleFunc("PATCH /api/completions/{id}/weight", h.UpdateWeight)
}

func registerDriverRoutes(mux *http.ServeMux, h *DriverHandlers, limit func(http.Handler) http.Handler) {
	mux.Handle("GET /api/driver/jobs/{token}", limit(http.HandlerFunc(h.View)))
	mux.Handle("POST /api/driver/jobs/{token}/start", limit(http.HandlerFunc(h.Start)))
	mux.Handle("POST /api/driver/jobs/{token}/complete", limit(http.HandlerFunc(h.Complete)))
}

func registerReferenceRoutes(mux *http.ServeMux, h *ReferenceHandlers) {
	mux.HandleFunc("GET /api/customers", h.Customers)
	mux.HandleFunc("GET /api/drivers", h.Drivers)
	mux.HandleFunc("GET /api/tracker", h.Tracker)
}
