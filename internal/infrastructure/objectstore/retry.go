package objectstore

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/pkg/logger"

	"go.uber.org/zap"
)

// RetryPolicy bounds retries of transient failures.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// RetryingStore retries transient failures of the wrapped Store with
// exponential backoff. Definitive results (including absence) are returned
// as is.
type RetryingStore struct {
	next   Store
	policy RetryPolicy
}

func NewRetryingStore(next Store, policy RetryPolicy) *RetryingStore {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = 100 * time.Millisecond
	}
	if policy.MaxInterval < policy.InitialInterval {
		policy.MaxInterval = policy.InitialInterval
	}
	return &RetryingStore{next: next, policy: policy}
}

func (s *RetryingStore) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.policy.InitialInterval
	eb.MaxInterval = s.policy.MaxInterval
	eb.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(s.policy.MaxAttempts-1)), ctx)
}

func (s *RetryingStore) do(ctx context.Context, op string, fn func() error) error {
	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		err := fn()
		if err != nil && !domainerrors.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, s.backOff(ctx), func(err error, wait time.Duration) {
		logger.Warn(ctx, "Retrying store operation",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
}

func (s *RetryingStore) Put(ctx context.Context, path string, data []byte) error {
	return s.do(ctx, "put", func() error {
		return s.next.Put(ctx, path, data)
	})
}

func (s *RetryingStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	var (
		data  []byte
		found bool
	)
	err := s.do(ctx, "get", func() error {
		var err error
		data, found, err = s.next.Get(ctx, path)
		return err
	})
	return data, found, err
}

func (s *RetryingStore) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string
	err := s.do(ctx, "list", func() error {
		var err error
		paths, err = s.next.List(ctx, prefix)
		return err
	})
	return paths, err
}

// Delete retries like the other operations. A retry after a delete that
// reached the store reports existed=false, which callers treat as success.
func (s *RetryingStore) Delete(ctx context.Context, path string) (bool, error) {
	var existed bool
	err := s.do(ctx, "delete", func() error {
		var err error
		existed, err = s.next.Delete(ctx, path)
		return err
	})
	return existed, err
}
