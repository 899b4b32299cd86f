package quota

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"pressroom/internal/models"
)

// RedisStore is a fixed-window counter store backed by a shared Redis
// instance, for deployments where multiple gateway instances must agree on
// one quota. INCR is atomic server-side, so the critical section holds
// across instances without client locking.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisOption func(*RedisStore)

// WithKeyPrefix overrides the default "quota" key namespace.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(cfg models.RedisConfig, opts ...RedisOption) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	s := &RedisStore{client: client, prefix: "quota"}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Check applies the fixed-window quota to key. The counter TTL is set only
// when absent (NX), so admissions never extend the window; the count may
// exceed MaxRequests under denial traffic, which is observably equivalent to
// clamping since the window boundary is unchanged.
func (s *RedisStore) Check(ctx context.Context, key string, limit Limit) (Decision, error) {
	k := s.prefix + ":" + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, limit.Window)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("quota check for %s: %w", key, err)
	}

	remaining := ttl.Val()
	if remaining <= 0 {
		// PTTL raced an expiry or the key predates TTL support; treat the
		// window as freshly started.
		remaining = limit.Window
	}
	resetAt := time.Now().Add(remaining)

	count := incr.Val()
	if count > int64(limit.MaxRequests) {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: remaining,
		}, nil
	}

	return Decision{
		Allowed:    true,
		Remaining:  limit.MaxRequests - int(count),
		ResetAt:    resetAt,
		RetryAfter: remaining,
	}, nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
