package kv

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

var (
	storeOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_store_ops_total",
			Help: "Key-value store operations by driver, op and key",
		},
		[]string{"driver", "op", "key"},
	)

	storeWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_store_write_failures_total",
			Help: "Failed key-value store writes; in-memory state stays authoritative",
		},
		[]string{"driver", "key"},
	)

	storeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_store_op_duration_ms",
			Help:    "Duration of key-value store operations in ms",
			Buckets: []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"driver", "op"},
	)
)

// Instrumented counts and times every call to the wrapped store.
type Instrumented struct {
	next   usecase.KVStore
	driver string
}

func NewInstrumented(next usecase.KVStore, driver string) *Instrumented {
	return &Instrumented{next: next, driver: driver}
}

func (s *Instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := s.next.Get(ctx, key)
	s.observe("get", key, start)
	return v, ok, err
}

func (s *Instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observe("set", key, start)
	if err != nil {
		storeWriteFailures.WithLabelValues(s.driver, key).Inc()
	}
	return err
}

func (s *Instrumented) observe(op, key string, start time.Time) {
	storeOps.WithLabelValues(s.driver, op, key).Inc()
	storeDuration.WithLabelValues(s.driver, op).Observe(float64(time.Since(start).Microseconds()) / 1000)
}

var _ usecase.KVStore = (*Instrumented)(nil)
