package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// WebhookLock serialises concurrent deliveries of the same checkout session.
type WebhookLock interface {
	// Acquire returns ok=false when another delivery already holds the key.
	// The token identifies this holder and must be passed to Release.
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)

	// Release drops the key if token still holds it, so a later redelivery
	// can proceed.
	Release(ctx context.Context, key, token string) error
}

// releaseScript deletes the lock only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock implements WebhookLock with SET NX and a TTL, so a crashed
// holder never blocks redelivery for longer than ttl.
type RedisLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLock creates a Redis-backed webhook lock.
func NewRedisLock(client *redis.Client, ttl time.Duration) *RedisLock {
	return &RedisLock{client: client, ttl: ttl}
}

func (l *RedisLock) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, lockKey(key), token, l.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis setnx failed: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release is a no-op once the lock expired, even if another holder has
// since taken the key.
func (l *RedisLock) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{lockKey(key)}, token).Err(); err != nil {
		return fmt.Errorf("redis release failed: %w", err)
	}
	return nil
}

func lockKey(key string) string {
	return "webhook:lock:" + key
}

// NopLock always grants the lock. Used when Redis is disabled.
type NopLock struct{}

func (NopLock) Acquire(context.Context, string) (string, bool, error) { return "", true, nil }

func (NopLock) Release(context.Context, string, string) error { return nil }

var (
	_ WebhookLock = (*RedisLock)(nil)
	_ WebhookLock = NopLock{}
)
