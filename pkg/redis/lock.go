package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another holder owns the key.
var ErrLockHeld = errors.New("lock held by another holder")

// releaseScript deletes the key only if it still carries our token, so an
// expired lock re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// KeyLocker provides short-lived exclusive locks on arbitrary keys using SETNX.
type KeyLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewKeyLocker creates a locker. Locks expire after ttl even if never released.
func NewKeyLocker(client *redis.Client, prefix string, ttl time.Duration) *KeyLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &KeyLocker{client: client, prefix: prefix, ttl: ttl}
}

// Lock acquires key or returns ErrLockHeld. The returned func releases it.
func (l *KeyLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	full := l.prefix + key

	ok, err := l.client.SetNX(ctx, full, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{full}, token).Err()
	}, nil
}
