package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/irishmetals/skipdispatch/config"
	httpx "github.com/irishmetals/skipdispatch/internal/http"
	"github.com/irishmetals/skipdispatch/internal/observability/metrics"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	server := newHTTPServer(appCfg.HTTP, BuildHTTPHandler(cfg.Services, appCfg.HTTP, logger))
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr, "base_url", appCfg.HTTP.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// BuildHTTPHandler assembles the API router for the given services.
func BuildHTTPHandler(services ServiceContainer, httpCfg config.HTTPConfig, logger *slog.Logger) http.Handler {
	// AppConfig.Validate rejects malformed entries before we get here.
	proxies, err := httpCfg.TrustedProxyPrefixes()
	if err != nil && logger != nil {
		logger.Warn("ignoring trusted proxies", "error", err)
	}
	routerServices := httpx.RouterServices{
		Lifecycle: services.Lifecycle,
		DriverRateLimit: httpx.RateLimitConfig{
			PerMinute:      httpCfg.DriverRateLimit,
			Burst:          httpCfg.DriverRateBurst,
			TrustedProxies: proxies,
		},
		Logger: logger,
	}
	// A nil *Hub must not reach the router as a non-nil http.Handler.
	if services.Hub != nil {
		routerServices.Events = services.Hub
	}
	return httpx.NewRouter(routerServices)
}

func newHTTPServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	addr := cfg.Addr
	if addr == "" {
		addr = ":3000"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}

// MetricsServerConfig configures the Prometheus scrape endpoint.
type MetricsServerConfig struct {
	Addr      string
	Collector *metrics.Collector
	Logger    *slog.Logger
}

// RunMetricsServer serves /metrics until ctx is cancelled.
func RunMetricsServer(ctx context.Context, cfg MetricsServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", cfg.Collector.Handler())
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting metrics server", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
