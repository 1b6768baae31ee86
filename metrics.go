package objslot

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting pool metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus (see package metric/prometheus).
//
// The pool calls the collector synchronously from the goroutine that mutates
// it.
type MetricsCollector interface {
	// RecordCreate is called after a slot is born at index.
	RecordCreate(index uint32)

	// RecordRemove is called after the slot at index died because its
	// reference count reached zero.
	RecordRemove(index uint32)

	// RecordRejected is called when Create refuses admission.
	RecordRejected()

	// RecordClear is called after Clear. removed is the number of live
	// elements discarded.
	RecordClear(removed int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(uint32) {}
func (NoopMetricsCollector) RecordRemove(uint32) {}
func (NoopMetricsCollector) RecordRejected()     {}
func (NoopMetricsCollector) RecordClear(int)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
//
// The counters are atomic so a monitoring goroutine may read them while the
// owning goroutine mutates the pool.
type BasicMetricsCollector struct {
	CreateCount   atomic.Int64
	RemoveCount   atomic.Int64
	RejectedCount atomic.Int64
	ClearCount    atomic.Int64
	ClearedItems  atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(uint32) {
	b.CreateCount.Add(1)
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(uint32) {
	b.RemoveCount.Add(1)
}

// RecordRejected implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRejected() {
	b.RejectedCount.Add(1)
}

// RecordClear implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClear(removed int) {
	b.ClearCount.Add(1)
	b.ClearedItems.Add(int64(removed))
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CreateCount   int64
	RemoveCount   int64
	RejectedCount int64
	ClearCount    int64
	ClearedItems  int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CreateCount:   b.CreateCount.Load(),
		RemoveCount:   b.RemoveCount.Load(),
		RejectedCount: b.RejectedCount.Load(),
		ClearCount:    b.ClearCount.Load(),
		ClearedItems:  b.ClearedItems.Load(),
	}
}
