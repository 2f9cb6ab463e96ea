// Package optioncache caches small select-option lists in Redis.
package optioncache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = time.Hour

type Option struct {
	ID          int64  `json:"id"`
	Description string `json:"descricao"`
}

type Loader func(ctx context.Context) ([]Option, error)

// Cache serves one list under one key. A nil Redis client disables caching but
// concurrent loads are still collapsed.
type Cache struct {
	rdb    *redis.Client
	key    string
	ttl    time.Duration
	sf     singleflight.Group
	logger *zap.Logger
}

func New(rdb *redis.Client, key string, ttl time.Duration, logger ...*zap.Logger) *Cache {
	l := zap.L().Named("optioncache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("optioncache")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, key: key, ttl: ttl, logger: l}
}

func (c *Cache) Key() string {
	return c.key
}

func (c *Cache) Get(ctx context.Context, load Loader) ([]Option, error) {
	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, c.key).Result(); err == nil {
			var opts []Option
			if json.Unmarshal([]byte(cached), &opts) == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := c.sf.Do(c.key, func() (any, error) {
		opts, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if c.rdb != nil {
			if data, err := json.Marshal(opts); err == nil {
				if err := c.rdb.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
					c.logger.Warn("store options failed", zap.String("key", c.key), zap.Error(err))
				}
			}
		}
		return opts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Option), nil
}

// Invalidate drops the cached list; failures are logged only.
func (c *Cache) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		c.logger.Error("invalidate options failed", zap.String("key", c.key), zap.Error(err))
	}
}
