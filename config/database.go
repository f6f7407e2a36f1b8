package config

import "strings"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"skipdispatch"`
	Password string `env:"PASSWORD"                envDefault:"skipdispatch"`
	Name     string `env:"NAME"                    envDefault:"skipdispatch"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// MaxOpenConns bounds the shared pool used by every request.
	MaxOpenConns int `env:"MAX_OPEN_CONNS" envDefault:"25"`
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// IsLocal reports whether the database host is a loopback address.
func (c DBConfig) IsLocal() bool {
	switch strings.ToLower(strings.TrimSpace(c.Host)) {
	case "localhost", "127.0.0.1", "::1", "postgres", "db":
		return true
	default:
		return false
	}
}

// RedisConfig contains Redis configuration. Redis is optional: without it the
// completion lock is process-local and job events stay on this instance.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:""`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:""`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// IsConfigured reports whether any Redis topology has been configured.
func (c RedisConfig) IsConfigured() bool {
	return strings.TrimSpace(c.URI) != "" || c.UseSentinel || c.UseCluster
}
