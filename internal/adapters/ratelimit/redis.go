package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"ticketcheckin/internal/clock"
	"ticketcheckin/internal/domain"
)

const keyPrefix = "ratelimit:"

// counter increments the hit count for key, setting ttl on it.
type counter interface {
	incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type redisCounter struct {
	client redis.UniversalClient
}

func (c redisCounter) incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var hits *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		hits = p.Incr(ctx, key)
		p.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return hits.Val(), nil
}

// FixedWindow admits up to Limit requests per key in each Window.
type FixedWindow struct {
	store  counter
	clock  clock.Clock
	limit  int64
	window time.Duration
	// timeout bounds a single redis round trip.
	timeout time.Duration
}

// NewRedisLimiter returns a fixed-window limiter backed by client.
func NewRedisLimiter(client redis.UniversalClient, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		store:   redisCounter{client: client},
		clock:   clock.NewSystem(),
		limit:   int64(limit),
		window:  window,
		timeout: 500 * time.Millisecond,
	}
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Allow reports whether one more request for key fits in the current window.
// When the store fails the request is admitted and the error returned.
func (l *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	slot := l.clock.Now().UnixNano() / int64(l.window)
	hits, err := l.store.incr(ctx, windowKey(key, slot), l.window)
	if err != nil {
		return true, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return hits <= l.limit, nil
}

// windowKey hashes key so raw identifiers never land in redis.
func windowKey(key string, slot int64) string {
	sum := sha256.Sum256([]byte(key))
	return keyPrefix + hex.EncodeToString(sum[:16]) + ":" + strconv.FormatInt(slot, 10)
}

type noopLimiter struct{}

// NewNoopLimiter admits every request. Used when REDIS_URL is unset.
func NewNoopLimiter() domain.RateLimiter { return noopLimiter{} }

func (noopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
