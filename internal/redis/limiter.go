package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter is used by the auth service to throttle repeated failed
// logins for a single account.
type AttemptLimiter interface {
	TooManyFailures(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type redisAttemptLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewRedisAttemptLimiter counts failures in a per-account Redis key that
// expires after the configured window.
func NewRedisAttemptLimiter(client *redis.Client, max int, window time.Duration) AttemptLimiter {
	return &redisAttemptLimiter{
		client: client,
		max:    max,
		window: window,
	}
}

func attemptKey(key string) string {
	return fmt.Sprintf("login:attempts:%s", key)
}

func (l *redisAttemptLimiter) TooManyFailures(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, attemptKey(key)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read attempt counter: %w", err)
	}
	return n >= l.max, nil
}

func (l *redisAttemptLimiter) RecordFailure(ctx context.Context, key string) error {
	k := attemptKey(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("bump attempt counter: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("set attempt counter ttl: %w", err)
		}
	}
	return nil
}

func (l *redisAttemptLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, attemptKey(key)).Err(); err != nil {
		return fmt.Errorf("reset attempt counter: %w", err)
	}
	return nil
}
