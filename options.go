package hpxgo

import (
	"log/slog"

	"github.com/hupe1980/hpxgo/blobstore"
)

// DefaultDeltaDepth is the number of depths below the query depth at which
// coverage overlap tests are refined.
const DefaultDeltaDepth = 2

type options struct {
	engine           Engine
	workers          int
	metricsCollector MetricsCollector
	logger           *Logger
	memoryLimit      int64
	ioLimit          int64
	maxConcurrentIO  int64
	store            blobstore.BlobStore
}

// Option configures a Client.
type Option func(*options)

// WithEngine substitutes the geometry engine. The default is healpix.Engine.
func WithEngine(e Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithWorkers sets the default number of workers per batch call. Values
// <= 0 use runtime.GOMAXPROCS(0). Small batches use fewer workers.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hpxgo.BasicMetricsCollector{}
//	c, _ := hpxgo.New(hpxgo.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Batches: %d, Avg latency: %dns\n", stats.BatchCount, stats.BatchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := hpxgo.NewJSONLogger(slog.LevelInfo)
//	c, _ := hpxgo.New(hpxgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMemoryLimit bounds the bytes held by transferred, unreleased buffers.
// Transfers beyond the limit fail with ErrMemoryLimitExceeded. 0 means
// unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithIOLimit throttles skymap blob persistence to bytesPerSec and at most
// maxConcurrent requests in flight. 0 disables either limit.
func WithIOLimit(bytesPerSec, maxConcurrent int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
		o.maxConcurrentIO = maxConcurrent
	}
}

// WithBlobStore sets the store used by ReadSkymapBlob and WriteSkymapBlob.
//
// Example with S3:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("skymaps/"))
//	c, _ := hpxgo.New(hpxgo.WithBlobStore(store), hpxgo.WithIOLimit(64<<20, 4))
func WithBlobStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = store
	}
}

type callOptions struct {
	workers int
	delta   uint8
}

// CallOption configures a single call.
type CallOption func(*callOptions)

// Parallel sets the number of workers for one call, overriding WithWorkers.
func Parallel(n int) CallOption {
	return func(o *callOptions) {
		o.workers = n
	}
}

// DeltaDepth sets how many depths below the query depth coverage overlap
// tests are refined. The default is DefaultDeltaDepth.
func DeltaDepth(d uint8) CallOption {
	return func(o *callOptions) {
		o.delta = d
	}
}
