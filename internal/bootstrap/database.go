package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/irishmetals/skipdispatch/config"
	"github.com/irishmetals/skipdispatch/internal/data"
)

const (
	connectTimeout  = 5 * time.Second
	connMaxLifetime = 5 * time.Minute
)

// DatabaseConfig contains configuration for database connections.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	RedisConfig config.RedisConfig
	Logger      *slog.Logger
}

// postgresDSN builds a pgx URL; url.URL escapes credentials.
func postgresDSN(cfg config.DBConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectDB opens the shared Postgres pool and verifies it with a ping.
func ConnectDB(cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", postgresDSN(cfg.DBConfig))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	maxOpen := cfg.DBConfig.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(max(1, maxOpen/5))
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("database connected",
			"host", cfg.DBConfig.Host,
			"port", cfg.DBConfig.Port,
			"database", cfg.DBConfig.Name,
		)
	}
	return db, nil
}

type redisMode int

const (
	redisDirect redisMode = iota
	redisSentinel
	redisCluster
)

// redisOptions resolves RedisConfig into universal options plus the topology
// to build. desc identifies the target in logs and never carries credentials.
func redisOptions(cfg config.RedisConfig) (opts *redis.UniversalOptions, mode redisMode, desc string, err error) {
	opts = &redis.UniversalOptions{Password: cfg.Password}

	switch {
	case cfg.UseCluster:
		mode = redisCluster
		opts.Addrs = trimAll(cfg.ClusterNodes)
		if len(opts.Addrs) == 0 {
			if err = applyRedisURI(opts, cfg.URI); err != nil {
				return nil, 0, "", err
			}
		}
		if len(opts.Addrs) == 0 {
			return nil, 0, "", errors.New("redis cluster configuration requires at least one address")
		}
		desc = "cluster:" + strings.Join(opts.Addrs, ",")
	case cfg.UseSentinel:
		mode = redisSentinel
		opts.Addrs = trimAll(cfg.SentinelNodes)
		if len(opts.Addrs) == 0 {
			return nil, 0, "", errors.New("redis sentinel configuration requires at least one sentinel node")
		}
		opts.MasterName = cfg.SentinelMasterName
		opts.SentinelPassword = cfg.SentinelPassword
		desc = "sentinel:" + cfg.SentinelMasterName
	default:
		mode = redisDirect
		if strings.TrimSpace(cfg.URI) == "" {
			return nil, 0, "", errors.New("redis direct configuration requires a URI")
		}
		if err = applyRedisURI(opts, cfg.URI); err != nil {
			return nil, 0, "", err
		}
		desc = opts.Addrs[0]
	}
	return opts, mode, desc, nil
}

// applyRedisURI accepts redis:// and rediss:// URLs or a bare host:port.
func applyRedisURI(opts *redis.UniversalOptions, uri string) error {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil
	}
	if !strings.HasPrefix(uri, "redis://") && !strings.HasPrefix(uri, "rediss://") {
		opts.Addrs = []string{uri}
		return nil
	}

	parsed, err := redis.ParseURL(uri)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	opts.Addrs = []string{parsed.Addr}
	opts.Username = parsed.Username
	if parsed.Password != "" {
		opts.Password = parsed.Password
	}
	opts.DB = parsed.DB
	opts.TLSConfig = parsed.TLSConfig
	return nil
}

func trimAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ConnectRedis establishes a connection to Redis. It returns a nil client
// when Redis is not configured; callers fall back to in-process adapters.
//
//nolint:ireturn // single, sentinel and cluster clients share redis.UniversalClient.
func ConnectRedis(cfg DatabaseConfig) (redis.UniversalClient, error) {
	if !cfg.RedisConfig.IsConfigured() {
		if cfg.Logger != nil {
			cfg.Logger.Info("redis not configured; using in-process completion lock and event hub")
		}
		return nil, nil //nolint:nilnil // Redis is optional.
	}

	opts, mode, desc, err := redisOptions(cfg.RedisConfig)
	if err != nil {
		return nil, err
	}

	var client redis.UniversalClient
	switch mode {
	case redisCluster:
		client = redis.NewClusterClient(opts.Cluster())
	case redisSentinel:
		client = redis.NewFailoverClient(opts.Failover())
	default:
		client = redis.NewClient(opts.Simple())
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis %s: %w", desc, pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("redis connected", "addr", desc)
	}
	return client, nil
}

// RunMigrations runs database migrations.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := data.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "database migrations completed")
	}
	return nil
}
