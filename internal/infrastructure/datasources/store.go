package datasources

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gisteam.backend/internal/config"
	"gisteam.backend/internal/infrastructure/objectstore"
	"gisteam.backend/pkg/logger"
	"gisteam.backend/pkg/redis"
)

var (
	newGCSStore = func(ctx context.Context, cfg config.StoreConfig) (*objectstore.GCSStore, error) {
		s, err := objectstore.NewGCSStore(ctx, cfg.Bucket, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		if cfg.ProjectID != "" {
			if err := s.EnsureBucket(ctx, cfg.ProjectID); err != nil {
				_ = s.Close()
				return nil, err
			}
		}
		return s, nil
	}
	openSQLStore   = objectstore.OpenSQLStore
	newRedisClient = redis.NewClient
)

// Datasources owns the connections opened for the configured backend.
type Datasources struct {
	// Store is the backend wrapped with retries and metrics.
	Store objectstore.Store
	// Redis is set when the backend or the registration lock needs it.
	Redis *goredis.Client

	closers []func() error
}

// Open connects to the configured backend. Metrics are registered with reg
// when it is not nil.
func Open(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*Datasources, error) {
	ds := &Datasources{}

	needRedis := cfg.Store.Backend == config.BackendRedis || cfg.Redis.LockEnabled
	if needRedis {
		client, err := newRedisClient(cfg.Redis.URL, cfg.Redis.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		ds.Redis = client
		ds.closers = append(ds.closers, client.Close)
	}

	var backend objectstore.Store
	switch cfg.Store.Backend {
	case config.BackendGCS:
		s, err := newGCSStore(ctx, cfg.Store)
		if err != nil {
			_ = ds.Close()
			return nil, fmt.Errorf("failed to open bucket %s: %w", cfg.Store.Bucket, err)
		}
		ds.closers = append(ds.closers, s.Close)
		backend = s
	case config.BackendRedis:
		backend = objectstore.NewRedisStore(ds.Redis, cfg.Store.KeyPrefix)
	case config.BackendSQL:
		s, err := openSQLStore(cfg.Database.Driver, cfg.Database.URL())
		if err != nil {
			_ = ds.Close()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		ds.closers = append(ds.closers, s.Close)
		backend = s
	case config.BackendMemory:
		backend = objectstore.NewMemoryStore(0)
	default:
		_ = ds.Close()
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}

	ds.Store = Decorate(backend, cfg, objectstore.NewStoreMetrics(reg))
	logger.Info(ctx, "Object store ready", zap.String("backend", cfg.Store.Backend))
	return ds, nil
}

// Decorate adds metrics around every attempt and retries transient failures.
func Decorate(backend objectstore.Store, cfg *config.Config, metrics *objectstore.StoreMetrics) objectstore.Store {
	instrumented := objectstore.NewInstrumentedStore(backend, cfg.Store.Backend, metrics)
	return objectstore.NewRetryingStore(instrumented, objectstore.RetryPolicy{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
	})
}

// Close closes everything Open created, most recent first.
func (d *Datasources) Close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	d.closers = nil
	return first
}
