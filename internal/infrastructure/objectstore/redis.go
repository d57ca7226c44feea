package objectstore

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	domainerrors "gisteam.backend/internal/domain/errors"
)

const redisScanCount = 500

// RedisStore keeps each object as one string key. keyPrefix namespaces the
// keys so several deployments can share a database.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) key(path string) string {
	return s.keyPrefix + path
}

func (s *RedisStore) Put(ctx context.Context, path string, data []byte) error {
	if err := s.client.Set(ctx, s.key(path), data, 0).Err(); err != nil {
		return domainerrors.Transient("redis put "+path, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, domainerrors.Transient("redis get "+path, err)
	}
	return data, true, nil
}

// List walks the keyspace with SCAN, which may return a key more than once
// and does not see keys written after the walk passed them.
func (s *RedisStore) List(ctx context.Context, prefix string) ([]string, error) {
	match := escapeGlob(s.key(prefix)) + "*"
	seen := make(map[string]struct{})
	var paths []string

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, redisScanCount).Result()
		if err != nil {
			return nil, domainerrors.Transient("redis list "+prefix, err)
		}
		for _, k := range keys {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			paths = append(paths, strings.TrimPrefix(k, s.keyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return paths, nil
}

func (s *RedisStore) Delete(ctx context.Context, path string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(path)).Result()
	if err != nil {
		return false, domainerrors.Transient("redis delete "+path, err)
	}
	return n > 0, nil
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
