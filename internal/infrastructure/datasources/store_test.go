package datasources

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gisteam.backend/internal/config"
	"gisteam.backend/internal/infrastructure/objectstore"
)

func testConfig(backend string) *config.Config {
	cfg := config.Load()
	cfg.Store.Backend = backend
	return cfg
}

func TestOpen_Memory(t *testing.T) {
	ds, err := Open(context.Background(), testConfig(config.BackendMemory), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })

	assert.Nil(t, ds.Redis)
	require.NoError(t, ds.Store.Put(context.Background(), "accounts/a", []byte("{}")))
	_, found, err := ds.Store.Get(context.Background(), "accounts/a")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestOpen_Redis(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	cfg := testConfig(config.BackendRedis)
	cfg.Redis.URL = "redis://" + srv.Addr()
	cfg.Store.KeyPrefix = "gis:"

	ds, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, ds.Redis)

	require.NoError(t, ds.Store.Put(context.Background(), "projects/p", []byte("{}")))
	assert.True(t, srv.Exists("gis:projects/p"))
	require.NoError(t, ds.Close())
}

func TestOpen_RedisUnavailable(t *testing.T) {
	orig := newRedisClient
	t.Cleanup(func() { newRedisClient = orig })
	newRedisClient = func(string, string) (*goredis.Client, error) { return nil, errors.New("refused") }

	_, err := Open(context.Background(), testConfig(config.BackendRedis), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestOpen_SQLite(t *testing.T) {
	cfg := testConfig(config.BackendSQL)
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = "file:datasources_open?mode=memory&cache=shared"

	ds, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })

	require.NoError(t, ds.Store.Put(context.Background(), "gallery/g", []byte("{}")))
	paths, err := ds.Store.List(context.Background(), "gallery/")
	require.NoError(t, err)
	assert.Equal(t, []string{"gallery/g"}, paths)
}

func TestOpen_GCSFailure(t *testing.T) {
	orig := newGCSStore
	t.Cleanup(func() { newGCSStore = orig })
	newGCSStore = func(context.Context, config.StoreConfig) (*objectstore.GCSStore, error) {
		return nil, errors.New("no credentials")
	}

	_, err := Open(context.Background(), testConfig(config.BackendGCS), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open bucket")
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), testConfig("s3"), nil)
	assert.Error(t, err)
}

func TestClose_ReportsFirstError(t *testing.T) {
	var order []int
	ds := &Datasources{closers: []func() error{
		func() error { order = append(order, 1); return errors.New("first") },
		func() error { order = append(order, 2); return errors.New("second") },
	}}
	err := ds.Close()
	assert.EqualError(t, err, "second")
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, ds.Close())
}
