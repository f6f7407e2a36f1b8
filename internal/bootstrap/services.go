package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/irishmetals/skipdispatch/config"
	redisadapter "github.com/irishmetals/skipdispatch/internal/adapters/redis"
	"github.com/irishmetals/skipdispatch/internal/data"
	"github.com/irishmetals/skipdispatch/internal/docket"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/events"
	"github.com/irishmetals/skipdispatch/internal/observability/metrics"
	"github.com/irishmetals/skipdispatch/internal/observability/notify"
	"github.com/irishmetals/skipdispatch/internal/observability/notify/slack"
	"github.com/irishmetals/skipdispatch/internal/service"
	"github.com/irishmetals/skipdispatch/internal/service/failurenotifier"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Lifecycle     *service.JobLifecycleService
	Hub           *events.Hub
	EventBus      *redisadapter.EventBus
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	Metrics         *metrics.Collector
	MetricsConfig   config.ObservabilityMetricsConfig
	FailureNotifier *failurenotifier.Service
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// buildObservability configures metrics and notification adapters.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	return ObservabilityContainer{
		Metrics:         metrics.NewCollector(),
		MetricsConfig:   cfg.Metrics,
		FailureNotifier: buildFailureNotifier(logger, cfg.Notifications),
	}
}

// NewServices wires the lifecycle service and its event path.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	observability := buildObservability(logger, deps.Config.Observability)
	wiring := buildEventWiring(deps.Config, deps.RedisClient, logger)
	lifecycle := NewLifecycleService(LifecycleDeps{
		Config:        deps.Config,
		DB:            deps.DB,
		RedisClient:   deps.RedisClient,
		Logger:        logger,
		Observability: observability,
		Events:        wiring,
	})

	return ServiceContainer{
		Lifecycle:     lifecycle,
		Hub:           wiring.Hub,
		EventBus:      wiring.Bus,
		Observability: observability,
	}
}

// LifecycleDeps groups what NewLifecycleService needs. Observability and
// Events are optional; the admin CLI runs without them.
type LifecycleDeps struct {
	Config        *config.AppConfig
	DB            *sql.DB
	RedisClient   redis.UniversalClient
	Logger        *slog.Logger
	Observability ObservabilityContainer
	Events        eventWiring
}

// NewLifecycleService builds the job lifecycle over Postgres repositories.
func NewLifecycleService(deps LifecycleDeps) *service.JobLifecycleService {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var recorder metrics.Recorder = metrics.Noop{}
	if deps.Observability.Metrics != nil {
		recorder = deps.Observability.Metrics
	}

	notifier := service.NewNotificationDispatcher(service.NotificationDispatcherOptions{
		Transports: buildTransports(cfg, logger),
		Config: service.NotificationConfig{
			CountryCode: cfg.Twilio.CountryCode,
			Location:    docket.LoadLocation(cfg.Dispatch.DocketTimezone),
		},
		Observers: service.NotificationObservers{
			Logger:   logger,
			Metrics:  recorder,
			Failures: failureSink(deps.Observability.FailureNotifier),
		},
	})

	// Out-of-process callers such as the admin CLI still reach live clients
	// through the shared Redis channel.
	publisher := deps.Events.Publisher
	if publisher == nil && deps.RedisClient != nil {
		publisher = redisadapter.NewEventBus(deps.RedisClient, cfg.Dispatch.EventsChannel, logger)
	}

	return service.NewJobLifecycleService(service.JobLifecycleServiceOptions{
		Repos: service.LifecycleRepositories{
			Jobs:        data.NewSkipJobRepo(deps.DB),
			Completions: data.NewCompletionRepo(deps.DB),
			History:     data.NewStatusHistoryRepo(deps.DB),
			Reference:   data.NewReferenceRepo(deps.DB),
		},
		Effects: service.LifecycleEffects{
			Notifier: notifier,
			Events:   publisher,
			Lock:     buildCompletionLock(deps.RedisClient),
			Metrics:  recorder,
			Logger:   logger,
		},
		Config: service.LifecycleConfig{
			Yard:    model.Point{Lat: cfg.Yard.Lat, Lng: cfg.Yard.Lng},
			BaseURL: cfg.HTTP.BaseURL,
			LockTTL: cfg.Dispatch.CompletionLockTTL,
		},
	})
}

// failureSink avoids handing the dispatcher a typed nil.
//
//nolint:ireturn // the dispatcher accepts any failure sink.
func failureSink(svc *failurenotifier.Service) interface {
	NotifyDeliveryFailure(ctx context.Context, payload notify.DeliveryFailurePayload)
} {
	if svc == nil || !svc.Enabled() {
		return nil
	}
	return svc
}

func buildFailureNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) *failurenotifier.Service {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	if !cfg.Enabled {
		return failurenotifier.NewService(failurenotifier.Options{
			Logger: baseLogger.With("component", "failure_notifier"),
		})
	}

	sinks := make([]failurenotifier.SinkRegistration, 0, 1)

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL:   cfg.Slack.WebhookURL,
			Channel:      cfg.Slack.Channel,
			Username:     cfg.Slack.Username,
			Timeout:      cfg.Timeout,
			RetryLimit:   cfg.RetryLimit,
			JobURLPrefix: cfg.Slack.JobURLPrefix,
		})
		if err != nil {
			baseLogger.Error("failed to initialise slack notifier", "error", err)
		} else {
			sinks = append(sinks, failurenotifier.SinkRegistration{
				Name: "slack",
				Sink: client,
			})
		}
	}

	return failurenotifier.NewService(failurenotifier.Options{
		Logger: baseLogger.With("component", "failure_notifier"),
		Sinks:  sinks,
	})
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// serviceStartupDeps groups dependencies for service startup.
type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	mode config.ServiceMode
	name string
	done <-chan struct{}
}

// startHTTPServerIfEnabled starts the HTTP server if enabled.
func startHTTPServerIfEnabled(deps *serviceStartupDeps) *http.Server {
	if deps == nil || deps.cfg == nil || !deps.enabledServices[config.ServiceModeHTTP] {
		return nil
	}
	return StartHTTPServer(&HTTPServerConfig{
		Config:   deps.cfg.Config,
		Services: deps.cfg.Services,
		Logger:   deps.logger,
	})
}

func launchBackground(ctx context.Context, deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := descriptor.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
			select {
			case deps.errCh <- errMsg:
			case <-ctx.Done():
			default:
				deps.logger.WarnContext(ctx, "dropping background service error",
					"service", descriptor.name,
					"error", errMsg)
			}
		}
	}()

	deps.logger.InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)
	return done
}

func startBackgroundServices(deps *serviceStartupDeps, services []backgroundService) []backgroundServiceHandle {
	if deps == nil {
		return nil
	}
	handles := make([]backgroundServiceHandle, 0, len(services))

	for _, svc := range services {
		done := launchBackground(deps.ctx, deps, svc)
		if done == nil {
			continue
		}

		handles = append(handles, backgroundServiceHandle{
			mode: svc.mode,
			name: svc.name,
			done: done,
		})
	}

	return handles
}

// newEventsBackgroundService runs the websocket hub and, with Redis, relays
// the shared event channel into it.
func newEventsBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeEvents,
		name: "event relay",
		start: func(ctx context.Context) error {
			hub := deps.cfg.Services.Hub
			if hub == nil {
				return nil
			}
			bus := deps.cfg.Services.EventBus
			if bus == nil {
				hub.Run(ctx)
				return nil
			}

			hubDone := make(chan struct{})
			go func() {
				defer close(hubDone)
				hub.Run(ctx)
			}()
			err := bus.Relay(ctx, hub)
			<-hubDone
			return err
		},
	}
}

func newMetricsBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeMetrics,
		name: "metrics server",
		start: func(ctx context.Context) error {
			obs := deps.cfg.Services.Observability
			if obs.Metrics == nil || !obs.MetricsConfig.IsEnabled() {
				return nil
			}
			return RunMetricsServer(ctx, MetricsServerConfig{
				Addr:      obs.MetricsConfig.Addr,
				Collector: obs.Metrics,
				Logger:    deps.logger,
			})
		},
	}
}

func buildBackgroundServices(deps *serviceStartupDeps) []backgroundService {
	if deps == nil {
		return nil
	}
	return []backgroundService{
		newEventsBackgroundService(deps),
		newMetricsBackgroundService(deps),
	}
}

// ServiceStartupResult holds the results of starting all services.
type ServiceStartupResult struct {
	HTTPServer *http.Server
	Background []backgroundServiceHandle
}

// startServices starts all enabled services and returns their completion channels.
func startServices(deps *serviceStartupDeps) ServiceStartupResult {
	return ServiceStartupResult{
		// Background first so the hub is running before the first upgrade.
		Background: startBackgroundServices(deps, buildBackgroundServices(deps)),
		HTTPServer: startHTTPServerIfEnabled(deps),
	}
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	errCh := make(chan error, errorChannelBufferSize(enabledServices))

	result := startServices(&serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           errCh,
	})

	return waitForShutdown(shutdownConfig{
		ctx:             serviceCtx,
		cancel:          cancel,
		errCh:           errCh,
		httpServer:      result.HTTPServer,
		shutdownTimeout: cfg.Config.HTTP.ShutdownTimeout,
		logger:          logger,
		backgrounds:     result.Background,
	})
}

func errorChannelCapacity(enabled map[config.ServiceMode]bool) int {
	count := 0
	for _, mode := range config.ValidServiceModes() {
		if enabled[mode] {
			count++
		}
	}
	return count
}

func errorChannelBufferSize(enabled map[config.ServiceMode]bool) int {
	return errorChannelCapacity(enabled) + 1
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx             context.Context
	cancel          context.CancelFunc
	errCh           <-chan error
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *slog.Logger
	backgrounds     []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop drains HTTP requests first so in-flight completions finish
// their side effects, then stops background services.
func gracefulStop(cfg shutdownConfig) error {
	var shutdownErr error
	if cfg.httpServer != nil {
		shutdownErr = ShutdownHTTPServer(ShutdownConfig{
			Context: context.WithoutCancel(cfg.ctx),
			Server:  cfg.httpServer,
			Timeout: cfg.shutdownTimeout,
			Logger:  cfg.logger,
		})
	}

	cfg.cancel()
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	return shutdownErr
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
