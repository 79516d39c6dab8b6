// Package config loads server configuration from AGE_* environment variables
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/age-toolbox/internal/errors"
)

// Storage backends for the stunt catalog
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config holds the server configuration
type Config struct {
	HTTPAddr      string        `env:"AGE_HTTP_ADDR" envDefault:":5000"`
	GRPCPort      int           `env:"AGE_GRPC_PORT" envDefault:"50051"`
	Storage       string        `env:"AGE_STORAGE" envDefault:"redis"`
	RedisAddr     string        `env:"AGE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPoolSize int           `env:"AGE_REDIS_POOL_SIZE" envDefault:"10"`
	SQLitePath    string        `env:"AGE_SQLITE_PATH" envDefault:"data/stunts.db"`
	SeedFile      string        `env:"AGE_SEED_FILE"`
	StaticDir     string        `env:"AGE_STATIC_DIR"`
	CORSOrigins   []string      `env:"AGE_CORS_ORIGINS" envDefault:"http://localhost:5173,http://127.0.0.1:5173" envSeparator:","`
	HistoryTTL    time.Duration `env:"AGE_HISTORY_TTL" envDefault:"24h"`
	LogLevel      slog.Level    `env:"AGE_LOG_LEVEL" envDefault:"info"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if strings.TrimSpace(c.HTTPAddr) == "" {
		vb.RequiredField("AGE_HTTP_ADDR")
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		vb.Fieldf("AGE_GRPC_PORT", "must be between 0 and 65535, got %d", c.GRPCPort)
	}

	switch c.Storage {
	case StorageRedis:
		errors.ValidateRequired("AGE_REDIS_ADDR", c.RedisAddr, vb)
		if c.RedisPoolSize <= 0 {
			vb.Field("AGE_REDIS_POOL_SIZE", "must be positive")
		}
	case StorageSQLite:
		errors.ValidateRequired("AGE_SQLITE_PATH", c.SQLitePath, vb)
	default:
		vb.Fieldf("AGE_STORAGE", "must be %q or %q, got %q", StorageRedis, StorageSQLite, c.Storage)
	}

	if c.HistoryTTL <= 0 {
		vb.Field("AGE_HISTORY_TTL", "must be positive")
	}

	return vb.Build()
}

// GRPCEnabled reports whether the gRPC health server should run
func (c *Config) GRPCEnabled() bool {
	return c.GRPCPort > 0
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
