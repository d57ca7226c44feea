package objectstore

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	domainerrors "gisteam.backend/internal/domain/errors"
)

// StoreMetrics holds the collectors shared by every InstrumentedStore.
type StoreMetrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewStoreMetrics creates the collectors and registers them with reg when it
// is not nil.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gisteam",
			Subsystem: "objectstore",
			Name:      "operations_total",
			Help:      "Object store operations by operation and outcome.",
		}, []string{"backend", "op", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gisteam",
			Subsystem: "objectstore",
			Name:      "operation_duration_seconds",
			Help:      "Object store operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "op"}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Duration)
	}
	return m
}

// InstrumentedStore records a counter and a latency observation for each call.
type InstrumentedStore struct {
	next    Store
	backend string
	metrics *StoreMetrics
}

func NewInstrumentedStore(next Store, backend string, metrics *StoreMetrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, backend: backend, metrics: metrics}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error, found bool) {
	outcome := "ok"
	switch {
	case domainerrors.IsTransient(err):
		outcome = "transient"
	case err != nil:
		outcome = "error"
	case !found:
		outcome = "absent"
	}
	s.metrics.Operations.WithLabelValues(s.backend, op, outcome).Inc()
	s.metrics.Duration.WithLabelValues(s.backend, op).Observe(time.Since(start).Seconds())
}

func (s *InstrumentedStore) Put(ctx context.Context, path string, data []byte) error {
	start := time.Now()
	err := s.next.Put(ctx, path, data)
	s.observe("put", start, err, true)
	return err
}

func (s *InstrumentedStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	start := time.Now()
	data, found, err := s.next.Get(ctx, path)
	s.observe("get", start, err, found)
	return data, found, err
}

func (s *InstrumentedStore) List(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	paths, err := s.next.List(ctx, prefix)
	s.observe("list", start, err, true)
	return paths, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, path string) (bool, error) {
	start := time.Now()
	existed, err := s.next.Delete(ctx, path)
	s.observe("delete", start, err, existed)
	return existed, err
}
