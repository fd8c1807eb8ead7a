package cache

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"thinkabout/internal/config"

	"github.com/redis/go-redis/v9"
)

var errUnavailable = errors.New("redis unavailable")

// Redis wraps a go-redis client. When the server is unreachable every call
// degrades to a no-op so callers fail open.
type Redis struct {
	client *redis.Client
	logger *log.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return &Redis{logger: logger}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("Cache | redis unavailable, bypassing addr=%s err=%v", addr, err)
		}
		_ = client.Close()
		return &Redis{logger: logger}
	}

	return &Redis{client: client, logger: logger}
}

func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) warnOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("Cache | redis error, bypassing err=%v", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.Available() {
		return errUnavailable
	}
	return r.client.Ping(ctx).Err()
}

// Incr increments key and starts its ttl on the first increment.
func (r *Redis) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if !r.Available() {
		return 0, nil
	}
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		r.warnOnce(err)
		return 0, err
	}
	if n == 1 && ttl > 0 {
		if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
			r.warnOnce(err)
			return n, err
		}
	}
	return n, nil
}

// GetInt returns 0 for a missing key.
func (r *Redis) GetInt(ctx context.Context, key string) (int64, error) {
	if !r.Available() {
		return 0, nil
	}
	n, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		r.warnOnce(err)
		return 0, err
	}
	return n, nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if !r.Available() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}
