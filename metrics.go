package hpxgo

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
//	    batchElements *prometheus.CounterVec
//	    batchLatency  *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordBatch(op string, n int, d time.Duration, err error) {
//	    p.batchElements.WithLabelValues(op).Add(float64(n))
//	    p.batchLatency.WithLabelValues(op).Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordBatch is called after each batch transform with the number of
	// elements and the time taken. err is nil if successful.
	RecordBatch(op string, n int, duration time.Duration, err error)

	// RecordQuery is called after each coverage query with the number of
	// cells returned.
	RecordQuery(cells int, duration time.Duration, err error)

	// RecordTransfer is called for every buffer handed over to the caller.
	RecordTransfer(bytes int64, err error)

	// RecordRelease is called for every release of a transferred buffer.
	RecordRelease(err error)

	// RecordSkymap is called after each skymap read, write or rasterization.
	RecordSkymap(op string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBatch(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordTransfer(int64, error)                   {}
func (NoopMetricsCollector) RecordRelease(error)                           {}
func (NoopMetricsCollector) RecordSkymap(string, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BatchCount       atomic.Int64
	BatchElements    atomic.Int64
	BatchErrors      atomic.Int64
	BatchTotalNanos  atomic.Int64
	QueryCount       atomic.Int64
	QueryCells       atomic.Int64
	QueryErrors      atomic.Int64
	QueryTotalNanos  atomic.Int64
	TransferCount    atomic.Int64
	TransferBytes    atomic.Int64
	TransferErrors   atomic.Int64
	ReleaseCount     atomic.Int64
	ReleaseErrors    atomic.Int64
	SkymapOps        atomic.Int64
	SkymapErrors     atomic.Int64
	SkymapTotalNanos atomic.Int64
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(_ string, n int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchErrors.Add(1)
		return
	}
	b.BatchElements.Add(int64(n))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(cells int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
		return
	}
	b.QueryCells.Add(int64(cells))
}

// RecordTransfer implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTransfer(bytes int64, err error) {
	if err != nil {
		b.TransferErrors.Add(1)
		return
	}
	b.TransferCount.Add(1)
	b.TransferBytes.Add(bytes)
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(err error) {
	if err != nil {
		b.ReleaseErrors.Add(1)
		return
	}
	b.ReleaseCount.Add(1)
}

// RecordSkymap implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSkymap(_ string, duration time.Duration, err error) {
	b.SkymapOps.Add(1)
	b.SkymapTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SkymapErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BatchCount:     b.BatchCount.Load(),
		BatchElements:  b.BatchElements.Load(),
		BatchErrors:    b.BatchErrors.Load(),
		BatchAvgNanos:  avg(b.BatchTotalNanos.Load(), b.BatchCount.Load()),
		QueryCount:     b.QueryCount.Load(),
		QueryCells:     b.QueryCells.Load(),
		QueryErrors:    b.QueryErrors.Load(),
		QueryAvgNanos:  avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		TransferCount:  b.TransferCount.Load(),
		TransferBytes:  b.TransferBytes.Load(),
		TransferErrors: b.TransferErrors.Load(),
		ReleaseCount:   b.ReleaseCount.Load(),
		ReleaseErrors:  b.ReleaseErrors.Load(),
		SkymapOps:      b.SkymapOps.Load(),
		SkymapErrors:   b.SkymapErrors.Load(),
		SkymapAvgNanos: avg(b.SkymapTotalNanos.Load(), b.SkymapOps.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BatchCount     int64
	BatchElements  int64
	BatchErrors    int64
	BatchAvgNanos  int64
	QueryCount     int64
	QueryCells     int64
	QueryErrors    int64
	QueryAvgNanos  int64
	TransferCount  int64
	TransferBytes  int64
	TransferErrors int64
	ReleaseCount   int64
	ReleaseErrors  int64
	SkymapOps      int64
	SkymapErrors   int64
	SkymapAvgNanos int64
}
