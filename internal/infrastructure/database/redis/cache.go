package redis

import (
	"context"
	stderrors "errors"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRose/pkg/errors"
)

var ErrCacheMiss = errors.New(errors.ErrCodeNotFound, "cache miss")

// RenderFunc produces the bytes to cache on a miss.
type RenderFunc func(ctx context.Context) ([]byte, error)

// RenderCache stores rendered diagram images keyed by a request digest.
type RenderCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error

	// GetOrRender returns the cached bytes for key, or calls render and
	// stores its output.  Concurrent misses on the same key share a single
	// render.  Redis failures are logged and never fail the call; only an
	// error from render is returned.  hit reports whether the bytes came
	// from Redis.
	GetOrRender(ctx context.Context, key string, render RenderFunc) (data []byte, hit bool, err error)
}

type redisRenderCache struct {
	client     *Client
	logger     logging.Logger
	prefix     string
	ttl        time.Duration
	ttlJitter  float64
	renderings singleflight.Group
}

type CacheOption func(*redisRenderCache)

func WithPrefix(prefix string) CacheOption {
	return func(c *redisRenderCache) { c.prefix = prefix }
}

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *redisRenderCache) { c.ttl = ttl }
}

// WithTTLJitter spreads expiries by +/- fraction of the TTL.
func WithTTLJitter(fraction float64) CacheOption {
	return func(c *redisRenderCache) { c.ttlJitter = fraction }
}

func NewRenderCache(client *Client, log logging.Logger, opts ...CacheOption) RenderCache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &redisRenderCache{
		client: client,
		logger: log,
		prefix: "georose:",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *redisRenderCache) fullKey(key string) string {
	return c.prefix + "png:" + key
}

func (c *redisRenderCache) expiry() time.Duration {
	if c.ttl <= 0 || c.ttlJitter <= 0 {
		return c.ttl
	}
	jitter := float64(c.ttl) * c.ttlJitter * (rand.Float64()*2 - 1)
	return c.ttl + time.Duration(jitter)
}

func (c *redisRenderCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to get from cache")
	}
	return data, nil
}

func (c *redisRenderCache) Set(ctx context.Context, key string, data []byte) error {
	if err := c.client.Set(ctx, c.fullKey(key), data, c.expiry()).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to write to cache")
	}
	return nil
}

func (c *redisRenderCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.fullKey(key)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to delete from cache")
	}
	return nil
}

func (c *redisRenderCache) GetOrRender(ctx context.Context, key string, render RenderFunc) ([]byte, bool, error) {
	data, err := c.Get(ctx, key)
	if err == nil {
		return data, true, nil
	}
	if !errors.IsNotFound(err) {
		c.logger.Warn("render cache read failed", logging.String("key", key), logging.Err(err))
	}

	v, err, _ := c.renderings.Do(key, func() (interface{}, error) {
		out, rerr := render(ctx)
		if rerr != nil {
			return nil, rerr
		}
		// Waiters share this write, so it outlives the leader's request.
		if serr := c.Set(context.WithoutCancel(ctx), key, out); serr != nil {
			c.logger.Warn("render cache write failed", logging.String("key", key), logging.Err(serr))
		}
		return out, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}

//Personal.AI order the ending
