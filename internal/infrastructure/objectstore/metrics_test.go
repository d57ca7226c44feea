package objectstore

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "gisteam.backend/internal/domain/errors"
)

func TestInstrumentedStore_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetrics(reg)
	inner := &flakyStore{MemoryStore: NewMemoryStore(0), failures: 1, err: domainerrors.Transient("get", errors.New("503"))}
	s := NewInstrumentedStore(inner, "memory", m)
	ctx := context.Background()

	_, _, err := s.Get(ctx, "a/1")
	require.Error(t, err)
	_, found, err := s.Get(ctx, "a/1")
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, s.Put(ctx, "a/1", []byte("x")))
	_, err = s.List(ctx, "a/")
	require.NoError(t, err)
	existed, err := s.Delete(ctx, "a/1")
	require.NoError(t, err)
	assert.True(t, existed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("memory", "get", "transient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("memory", "get", "absent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("memory", "put", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("memory", "delete", "ok")))
	assert.Equal(t, 4, testutil.CollectAndCount(m.Duration))
}

func TestNewStoreMetrics_NilRegisterer(t *testing.T) {
	m := NewStoreMetrics(nil)
	assert.NotNil(t, m.Operations)
	assert.NotNil(t, m.Duration)
}
