package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: Postgres and Redis configuration
//   - http.go: HTTP server configuration
//   - dispatch.go: yard, Twilio, SMTP and lifecycle settings
//   - services.go: which processes run in this instance
type AppConfig struct {
	// IsDev relaxes production guardrails (seeding remote databases, etc.).
	// Set DEV=true or APP_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"http,metrics,events"`

	// Dispatch configuration
	Yard     YardConfig
	Twilio   TwilioConfig
	SMTP     SMTPConfig
	Dispatch DispatchConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Twilio.Sanitize()
	c.SMTP.Sanitize()
	c.Dispatch.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode checks APP_ENV as a fallback for DEV.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	return c.serviceEnabled(ServiceModeHTTP)
}

// IsMetricsEnabled returns true if the Prometheus listener is enabled.
func (c *AppConfig) IsMetricsEnabled() bool {
	return c.serviceEnabled(ServiceModeMetrics) && c.Observability.Metrics.IsEnabled()
}

// IsEventsEnabled returns true if live job events are relayed to websocket clients.
func (c *AppConfig) IsEventsEnabled() bool {
	return c.serviceEnabled(ServiceModeEvents)
}

func (c *AppConfig) serviceEnabled(mode ServiceMode) bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[mode]
}
