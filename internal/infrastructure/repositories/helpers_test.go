package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/internal/infrastructure/objectstore"
)

// testClock advances by step on every reading.
type testClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newTestClock(step time.Duration) *testClock {
	return &testClock{now: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), step: step}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func testOptions(clock *testClock) Options {
	return Options{
		ListConcurrency: 4,
		ListAttempts:    5,
		ListInterval:    time.Millisecond,
		Now:             clock.Now,
	}
}

// failingStore wraps a MemoryStore and fails selected operations.
type failingStore struct {
	*objectstore.MemoryStore
	failGet  bool
	failList bool
	puts     int
}

var errBackendDown = domainerrors.Transient("test", errors.New("backend down"))

func (s *failingStore) Put(ctx context.Context, path string, data []byte) error {
	s.puts++
	return s.MemoryStore.Put(ctx, path, data)
}

func (s *failingStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	if s.failGet {
		return nil, false, errBackendDown
	}
	return s.MemoryStore.Get(ctx, path)
}

func (s *failingStore) List(ctx context.Context, prefix string) ([]string, error) {
	if s.failList {
		return nil, errBackendDown
	}
	return s.MemoryStore.List(ctx, prefix)
}

func fixedIDs(ids ...uuid.UUID) func() uuid.UUID {
	var mu sync.Mutex
	i := 0
	return func() uuid.UUID {
		mu.Lock()
		defer mu.Unlock()
		id := ids[i%len(ids)]
		i++
		return id
	}
}
