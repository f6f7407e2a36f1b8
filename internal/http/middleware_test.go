package httpx

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRecover_ReturnsInternalError(t *testing.T) {
	h := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/skip-jobs", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal","message":"Internal server error"}`, w.Body.String())
}

func TestLogging_PassesThroughStatus(t *testing.T) {
	h := Logging(discardLogger())(okHandler())
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimit_ThrottlesPerClient(t *testing.T) {
	h := RateLimit(RateLimitConfig{PerMinute: 1, Burst: 2})(okHandler())

	send := func(addr string) int {
		r := httptest.NewRequest(http.MethodGet, "/api/driver/jobs/x", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:5000"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5002"))
	// A different client has its own bucket.
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2:5000"))
}

func TestRateLimit_DisabledWhenZero(t *testing.T) {
	h := RateLimit(RateLimitConfig{})(okHandler())
	for range 50 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestIPLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	l := newIPLimiter(RateLimitConfig{PerMinute: 60, Burst: 1, IdleTTL: time.Minute})
	l.now = func() time.Time { return now }

	require.True(t, l.allow("a"))
	require.False(t, l.allow("a"))
	assert.Len(t, l.clients, 1)

	now = now.Add(2 * time.Minute)
	require.True(t, l.allow("b"))
	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "b")
}

func TestRateLimit_IgnoresForwardedHeaderFromUntrustedPeer(t *testing.T) {
	h := RateLimit(RateLimitConfig{PerMinute: 1, Burst: 1})(okHandler())

	allowed := 0
	for i := range 50 {
		r := httptest.NewRequest(http.MethodGet, "/api/driver/jobs/x", nil)
		r.RemoteAddr = "203.0.113.7:4000"
		r.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code == http.StatusNoContent {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
}

func TestRateLimit_TrustedProxyKeysOnForwardedClient(t *testing.T) {
	h := RateLimit(RateLimitConfig{
		PerMinute:      1,
		Burst:          1,
		TrustedProxies: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	})(okHandler())

	send := func(fwd string) int {
		r := httptest.NewRequest(http.MethodGet, "/api/driver/jobs/x", nil)
		r.RemoteAddr = "10.1.2.3:4000"
		r.Header.Set("X-Forwarded-For", fwd)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, send("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
	// Spoofed hops left of the real client do not buy a fresh bucket.
	assert.Equal(t, http.StatusTooManyRequests, send("192.0.2.99, 198.51.100.1"))
	assert.Equal(t, http.StatusNoContent, send("198.51.100.2"))
}

func TestClientAddr(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8"), netip.MustParsePrefix("192.0.2.10/32")}
	tests := []struct {
		name    string
		remote  string
		fwd     string
		trusted []netip.Prefix
		want    string
	}{
		{"peer only", "192.0.2.1:1234", "", nil, "192.0.2.1"},
		{"untrusted peer ignores header", "192.0.2.1:1234", "203.0.113.9", nil, "192.0.2.1"},
		{"trusted peer uses rightmost untrusted hop", "10.0.0.1:80", "1.1.1.1, 203.0.113.9, 10.0.0.2", trusted, "203.0.113.9"},
		{"all hops trusted", "10.0.0.1:80", "192.0.2.10, 10.0.0.2", trusted, "192.0.2.10"},
		{"trusted peer without header", "10.0.0.1:80", "", trusted, "10.0.0.1"},
		{"garbage hop stops the walk", "10.0.0.1:80", "203.0.113.9, not-an-ip", trusted, "10.0.0.1"},
		{"remote without port", "192.0.2.1", "", nil, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.fwd != "" {
				r.Header.Set("X-Forwarded-For", tt.fwd)
			}
			assert.Equal(t, tt.want, clientAddr(r, tt.trusted))
		})
	}
}

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 50, 0},
		{"limit=10&offset=5", 10, 5},
		{"limit=0&offset=-3", 1, 0},
		{"limit=9999", 500, 0},
		{"limit=abc", 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/skip-jobs?"+tt.query, nil)
			lim, off := ParseLimitOffset(r, defaultListLimit, maxListLimit)
			assert.Equal(t, tt.wantLimit, lim)
			assert.Equal(t, tt.wantOffset, off)
		})
	}
}
