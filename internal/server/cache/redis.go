package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// RedisCache keeps JSON values in Redis.
type RedisCache struct {
	client *redis.Client
	logger logging.Logger
}

func NewRedisCache(client *redis.Client, logger logging.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// Connect dials addr, a redis:// or rediss:// URL or a bare host:port, and
// checks the connection with a ping.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		var err error
		opts, err = redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dst any) bool {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.Warn(ctx, "cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		c.logger.Warn(ctx, "cache decode error", "key", key, "error", err)
		return false
	}
	c.logger.Debug(ctx, "cache hit", "key", key)
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, v any, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn(ctx, "cache encode error", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, b, ttl).Err(); err != nil {
		c.logger.Warn(ctx, "cache set error", "key", key, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn(ctx, "cache delete error", "keys", keys, "error", err)
	}
}

// DeletePrefix removes every key starting with prefix. It scans instead of
// using KEYS so a large keyspace does not block the server.
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			c.logger.Warn(ctx, "cache scan error", "prefix", prefix, "error", err)
			return
		}
		c.Delete(ctx, keys...)
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
