package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/amora-bot/amora/pkg/domain/interfaces"
	"github.com/amora-bot/amora/pkg/service/cache"
	"github.com/amora-bot/amora/pkg/utils/logging"
)

// Cache holds CLI flags for the ephemeral key-value store backend
type Cache struct {
	backend  string
	addr     string
	password string
	db       int
}

// Flags returns CLI flags for cache configuration
func (c *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cache-backend",
			Usage:       "Cache backend type (redis or memory)",
			Category:    "Cache",
			Value:       "redis",
			Sources:     cli.EnvVars("AMORA_CACHE_BACKEND"),
			Destination: &c.backend,
		},
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address (host:port, required when using redis backend)",
			Category:    "Cache",
			Sources:     cli.EnvVars("AMORA_REDIS_ADDR"),
			Destination: &c.addr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Category:    "Cache",
			Sources:     cli.EnvVars("AMORA_REDIS_PASSWORD"),
			Destination: &c.password,
		},
		&cli.IntFlag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Category:    "Cache",
			Sources:     cli.EnvVars("AMORA_REDIS_DB"),
			Destination: &c.db,
		},
	}
}

func (c Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", c.backend),
		slog.String("addr", c.addr),
		slog.Int("password.len", len(c.password)),
		slog.Int("db", c.db),
	)
}

// Configure initializes the key-value store for the configured backend. The
// redis backend is verified with a ping before use.
func (c *Cache) Configure(ctx context.Context) (interfaces.KeyValueStore, error) {
	switch c.backend {
	case "redis":
		if c.addr == "" {
			return nil, goerr.New("redis-addr is required when using redis backend")
		}
		kvs := cache.NewRedis(c.addr, c.password, c.db)
		if err := kvs.Ping(ctx); err != nil {
			return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", c.addr))
		}
		logging.Default().Info("Using Redis cache", "addr", c.addr, "db", c.db)
		return kvs, nil

	case "memory":
		logging.Default().Info("Using in-memory cache (development mode)")
		return cache.NewMemory(), nil

	default:
		return nil, goerr.New("invalid cache backend", goerr.V("backend", c.backend))
	}
}
