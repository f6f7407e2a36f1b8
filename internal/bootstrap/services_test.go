package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irishmetals/skipdispatch/config"
	"github.com/irishmetals/skipdispatch/internal/data"
	"github.com/irishmetals/skipdispatch/internal/events"
)

func TestErrorChannelCapacity(t *testing.T) {
	tests := []struct {
		name  string
		modes []config.ServiceMode
		want  int
	}{
		{
			name: "no services enabled",
			want: 0,
		},
		{
			name:  "http only",
			modes: []config.ServiceMode{config.ServiceModeHTTP},
			want:  1,
		},
		{
			name:  "http and events",
			modes: []config.ServiceMode{config.ServiceModeHTTP, config.ServiceModeEvents},
			want:  2,
		},
		{
			name: "all services enabled",
			modes: []config.ServiceMode{
				config.ServiceModeHTTP,
				config.ServiceModeMetrics,
				config.ServiceModeEvents,
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enabled := make(map[config.ServiceMode]bool, len(tt.modes))
			for _, mode := range tt.modes {
				enabled[mode] = true
			}

			assert.Equal(t, tt.want, errorChannelCapacity(enabled))
			assert.Equal(t, tt.want+1, errorChannelBufferSize(enabled))
		})
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildEventWiring(t *testing.T) {
	t.Run("events disabled without redis has no publisher", func(t *testing.T) {
		cfg := &config.AppConfig{Services: "http"}
		w := buildEventWiring(cfg, nil, discardLogger())
		assert.Nil(t, w.Hub)
		assert.Nil(t, w.Bus)
		assert.Nil(t, w.Publisher)
	})

	t.Run("events enabled without redis publishes locally", func(t *testing.T) {
		cfg := &config.AppConfig{Services: "http,events"}
		w := buildEventWiring(cfg, nil, discardLogger())
		require.NotNil(t, w.Hub)
		assert.Nil(t, w.Bus)
		assert.IsType(t, &events.LocalPublisher{}, w.Publisher)
	})
}

func TestBuildCompletionLockWithoutRedis(t *testing.T) {
	assert.IsType(t, &data.LocalCompletionLock{}, buildCompletionLock(nil))
}

func TestBuildTransportsUnconfigured(t *testing.T) {
	cfg := &config.AppConfig{}
	transports := buildTransports(cfg, discardLogger())

	assert.Nil(t, transports.Messages)
	assert.Nil(t, transports.Mailer)
	assert.NotNil(t, transports.Renderer)
}

func TestBuildFailureNotifier(t *testing.T) {
	disabled := buildFailureNotifier(discardLogger(), config.ObservabilityNotificationsConfig{})
	require.NotNil(t, disabled)
	assert.False(t, disabled.Enabled())
	assert.Nil(t, failureSink(disabled))

	enabled := buildFailureNotifier(discardLogger(), config.ObservabilityNotificationsConfig{
		Enabled:    true,
		Timeout:    time.Second,
		RetryLimit: 1,
		Slack: config.SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.example/services/T000/B000/XXX",
			Username:   "skipdispatch",
		},
	})
	assert.True(t, enabled.Enabled())
	assert.NotNil(t, failureSink(enabled))
}

func TestBuildHTTPHandlerWithoutHub(t *testing.T) {
	h := BuildHTTPHandler(ServiceContainer{}, config.HTTPConfig{}, discardLogger())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShutdownHTTPServerNil(t *testing.T) {
	require.NoError(t, ShutdownHTTPServer(ShutdownConfig{}))
}

func TestLaunchBackgroundReportsError(t *testing.T) {
	errCh := make(chan error, 1)
	deps := &serviceStartupDeps{
		ctx:             context.Background(),
		logger:          discardLogger(),
		enabledServices: map[config.ServiceMode]bool{config.ServiceModeEvents: true},
		errCh:           errCh,
	}

	done := launchBackground(context.Background(), deps, backgroundService{
		mode:  config.ServiceModeEvents,
		name:  "event relay",
		start: func(context.Context) error { return errors.New("boom") },
	})
	require.NotNil(t, done)
	<-done

	select {
	case err := <-errCh:
		assert.ErrorContains(t, err, "event relay failed: boom")
	default:
		t.Fatal("expected background error")
	}
}

func TestLaunchBackgroundSkipsDisabledMode(t *testing.T) {
	deps := &serviceStartupDeps{
		logger:          discardLogger(),
		enabledServices: map[config.ServiceMode]bool{},
	}
	done := launchBackground(context.Background(), deps, backgroundService{
		mode:  config.ServiceModeMetrics,
		name:  "metrics server",
		start: func(context.Context) error { return nil },
	})
	assert.Nil(t, done)
}
