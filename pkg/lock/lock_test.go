package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(t *testing.T) (*RedisGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisGuard(client, "test:", time.Second), mr
}

func TestRedisGuardExclusive(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	release, err := g.Acquire(ctx, "like:a:b")
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:like:a:b"))

	_, err = g.Acquire(ctx, "like:a:b")
	assert.True(t, errors.Is(err, ErrHeld))

	other, err := g.Acquire(ctx, "like:a:c")
	require.NoError(t, err)
	other()

	release()
	assert.False(t, mr.Exists("test:like:a:b"))

	again, err := g.Acquire(ctx, "like:a:b")
	require.NoError(t, err)
	again()
}

func TestRedisGuardExpires(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	_, err := g.Acquire(ctx, "sub:x:y")
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	release, err := g.Acquire(ctx, "sub:x:y")
	require.NoError(t, err)
	release()
}

func TestRedisGuardStaleReleaseKeepsNewHolder(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	stale, err := g.Acquire(ctx, "k")
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	_, err = g.Acquire(ctx, "k")
	require.NoError(t, err)

	stale()
	assert.True(t, mr.Exists("test:k"))
}

func TestRedisGuardBackendDown(t *testing.T) {
	g, mr := newGuard(t)
	mr.Close()

	_, err := g.Acquire(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrHeld))
}

func TestNoop(t *testing.T) {
	release, err := Noop{}.Acquire(context.Background(), "k")
	require.NoError(t, err)
	release()
}
