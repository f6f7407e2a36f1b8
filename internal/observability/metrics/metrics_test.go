package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollectorWithRegistry(reg, reg)

	c.ObserveTransition("complete", ResultSuccess, 120*time.Millisecond)
	c.ObserveTransition("complete", ResultConflict, 0)
	c.ObserveTransition("complete", ResultConflict, 0)
	c.CountDelivery("sms", ResultSuccess)
	c.CountDelivery("email", ResultError)
	c.CountHistoryFailure()

	assert.InDelta(t, 1, testutil.ToFloat64(c.transitions.WithLabelValues("complete", ResultSuccess)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(c.transitions.WithLabelValues("complete", ResultConflict)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.deliveries.WithLabelValues("email", ResultError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.historyFailures), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(c.durations))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.CountDelivery("whatsapp", ResultSuccess)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `skipdispatch_notification_deliveries_total{channel="whatsapp",result="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNoop(t *testing.T) {
	var r Recorder = Noop{}
	assert.NotPanics(t, func() {
		r.ObserveTransition("send", ResultSuccess, time.Second)
		r.CountDelivery("sms", ResultError)
		r.CountHistoryFailure()
	})
}
