package topogo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter   prometheus.Counter
//	    reduceHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordInsert(duration time.Duration, err error) {
//	    p.insertCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordInsert is called after each simplex insertion.
	// duration is the total time taken, err is nil if successful.
	RecordInsert(duration time.Duration, err error)

	// RecordReduce is called after each full reduction.
	// columns is the number of columns processed, pairs is the number of
	// persistence pairs produced, duration is the total time taken.
	RecordReduce(columns, pairs int, duration time.Duration, err error)

	// RecordTranspose is called after each vineyard transposition.
	RecordTranspose(duration time.Duration, err error)

	// RecordCycles is called after each representative-cycle extraction.
	// count is the number of cycles produced.
	RecordCycles(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)           {}
func (NoopMetricsCollector) RecordReduce(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordTranspose(time.Duration, error)        {}
func (NoopMetricsCollector) RecordCycles(int, time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	ReduceCount      atomic.Int64
	ReduceErrors     atomic.Int64
	ReduceColumns    atomic.Int64
	ReducePairs      atomic.Int64
	ReduceTotalNanos atomic.Int64
	TransposeCount   atomic.Int64
	TransposeErrors  atomic.Int64
	CycleCount       atomic.Int64
	CycleErrors      atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordReduce implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReduce(columns, pairs int, duration time.Duration, err error) {
	b.ReduceCount.Add(1)
	b.ReduceColumns.Add(int64(columns))
	b.ReducePairs.Add(int64(pairs))
	b.ReduceTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReduceErrors.Add(1)
	}
}

// RecordTranspose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTranspose(duration time.Duration, err error) {
	b.TransposeCount.Add(1)
	if err != nil {
		b.TransposeErrors.Add(1)
	}
}

// RecordCycles implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCycles(count int, duration time.Duration, err error) {
	b.CycleCount.Add(int64(count))
	if err != nil {
		b.CycleErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:     b.InsertCount.Load(),
		InsertErrors:    b.InsertErrors.Load(),
		InsertAvgNanos:  b.getAvgInsertNanos(),
		ReduceCount:     b.ReduceCount.Load(),
		ReduceErrors:    b.ReduceErrors.Load(),
		ReduceColumns:   b.ReduceColumns.Load(),
		ReducePairs:     b.ReducePairs.Load(),
		ReduceAvgNanos:  b.getAvgReduceNanos(),
		TransposeCount:  b.TransposeCount.Load(),
		TransposeErrors: b.TransposeErrors.Load(),
		CycleCount:      b.CycleCount.Load(),
		CycleErrors:     b.CycleErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgInsertNanos() int64 {
	count := b.InsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgReduceNanos() int64 {
	count := b.ReduceCount.Load()
	if count == 0 {
		return 0
	}
	return b.ReduceTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount     int64
	InsertErrors    int64
	InsertAvgNanos  int64
	ReduceCount     int64
	ReduceErrors    int64
	ReduceColumns   int64
	ReducePairs     int64
	ReduceAvgNanos  int64
	TransposeCount  int64
	TransposeErrors int64
	CycleCount      int64
	CycleErrors     int64
}
