package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":3000"`

	// BaseURL is the public URL of the application (e.g., "https://dispatch.example.ie").
	// Driver magic links are built as {BaseURL}/driver/skip/{token}.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"60s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// DriverRateLimit is requests per minute per client on the magic-link routes.
	// Zero disables the limit.
	DriverRateLimit int `env:"HTTP_DRIVER_RATE_LIMIT" envDefault:"60"`
	DriverRateBurst int `env:"HTTP_DRIVER_RATE_BURST" envDefault:"10"`

	// TrustedProxies lists peer IPs or CIDRs whose X-Forwarded-For header is
	// believed when keying the rate limit. Empty means the peer address is used.
	TrustedProxies []string `env:"HTTP_TRUSTED_PROXIES" envDefault:""`
}

// TrustedProxyPrefixes parses TrustedProxies. A bare IP becomes a single-host prefix.
func (h HTTPConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, raw := range h.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("HTTP_TRUSTED_PROXIES: %w", err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("HTTP_TRUSTED_PROXIES: %w", err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":3000"
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 30 * time.Second
	}
	// Completing a job renders a PDF and talks to SMTP inside the request.
	if h.WriteTimeout < 30*time.Second {
		h.WriteTimeout = 30 * time.Second
	}
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = 120 * time.Second
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
	if h.DriverRateLimit < 0 {
		h.DriverRateLimit = 0
	}
	if h.DriverRateBurst < 1 {
		h.DriverRateBurst = 1
	}
}
