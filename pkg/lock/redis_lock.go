// Package lock provides a short-lived mutual exclusion across API replicas,
// backed by redis SET NX PX.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when another holder owns the key.
var ErrNotAcquired = errors.New("lock: not acquired")

// releaseScript deletes the key only if it still holds our token, so an
// expired lock taken over by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

// Release gives the lock back. It is safe to call more than once.
type Release func(ctx context.Context) error

type RedisLocker struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisLocker(rdb *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{rdb: rdb, prefix: prefix}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("lock: acquire %s: %w", fullKey, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	released := false
	return func(ctx context.Context) error {
		if released {
			return nil
		}
		released = true
		if err := releaseScript.Run(ctx, l.rdb, []string{fullKey}, token).Err(); err != nil {
			return fmt.Errorf("lock: release %s: %w", fullKey, err)
		}
		return nil
	}, nil
}
