package cache

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/amora-bot/amora/pkg/domain/interfaces"
	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	goredis "github.com/redis/go-redis/v9"
)

// Redis is a KeyValueStore backed by a Redis server. Expiry is enforced
// server side, and GetDel maps to the atomic GETDEL command so two racing
// consumers can never both receive a value.
type Redis struct {
	rdb *goredis.Client
}

var _ interfaces.KeyValueStore = (*Redis)(nil)

// NewRedis creates a Redis-backed key-value store
func NewRedis(addr, password string, db int) *Redis {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Redis{rdb: rdb}
}

func (x *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := x.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return wrapRedisErr(err, "failed to set key", key)
	}
	return nil
}

func (x *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := x.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, wrapRedisErr(err, "failed to get key", key)
	}
	return raw, nil
}

func (x *Redis) GetDel(ctx context.Context, key string) ([]byte, error) {
	raw, err := x.rdb.GetDel(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, wrapRedisErr(err, "failed to consume key", key)
	}
	return raw, nil
}

func (x *Redis) Ping(ctx context.Context) error {
	if err := x.rdb.Ping(ctx).Err(); err != nil {
		return wrapRedisErr(err, "redis ping failed", "")
	}
	return nil
}

func (x *Redis) Close() error {
	return x.rdb.Close()
}

// wrapRedisErr tags connectivity failures as unavailable and everything else
// as a storage error. The caller logs both; the tag matters for observability
// only.
func wrapRedisErr(err error, msg, key string) error {
	tag := types.TagStorage

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, goredis.ErrClosed) {
		tag = types.TagUnavailable
	}

	return goerr.Wrap(err, msg, goerr.T(tag), goerr.V("key", key))
}
