// Package lock provides a short-lived distributed guard keyed by an
// engagement pair, so that concurrent toggles of the same (actor, target)
// across API instances are rejected instead of interleaving.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrHeld is returned when another holder owns the key.
var ErrHeld = errors.New("lock: key is held")

// Guard acquires a key and returns the function that releases it.
type Guard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Noop never blocks; the store's unique constraints remain the only guard.
type Noop struct{}

func (Noop) Acquire(context.Context, string) (func(), error) { return func() {}, nil }

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard implements Guard with SET NX PX.
type RedisGuard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, prefix string, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if prefix == "" {
		prefix = "toggle:"
	}
	return &RedisGuard{client: client, prefix: prefix, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	full := g.prefix + key
	ok, err := g.client.SetNX(ctx, full, token, g.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHeld
	}
	return func() {
		// 使用独立 context，请求 context 可能已取消
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, g.client, []string{full}, token).Err()
	}, nil
}
