package hpxgo

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/hupe1980/hpxgo/blobstore"
	"github.com/hupe1980/hpxgo/buffer"
	"github.com/hupe1980/hpxgo/coverage"
	"github.com/hupe1980/hpxgo/dispatch"
	"github.com/hupe1980/hpxgo/healpix"
	"github.com/hupe1980/hpxgo/internal/resource"
)

// Engine is the per-element geometry the Client fans out over. Every method
// must be safe for concurrent use; healpix.Engine is stateless.
type Engine interface {
	Hash(depth uint8, lon, lat float64) (hash uint64, dx, dy float64)
	Center(depth uint8, hash uint64, dx, dy float64) (lon, lat float64)
	PathAlongEdges(depth uint8, hash uint64, step int, dst []healpix.LonLat)
	Neighbours(depth uint8, hash uint64) [9]int64
	ExternalEdge(depth uint8, hash uint64, delta uint8, edges []uint64) [4]int64
	ToRing(depth uint8, hash uint64) uint64
	FromRing(depth uint8, ring uint64) uint64
	CenterXY(depth uint8, hash uint64) (x, y float64)
	LonLatToXY(lon, lat float64) (x, y float64)
	XYToLonLat(x, y float64) (lon, lat float64, ok bool)
	Bilinear(depth uint8, lon, lat float64) ([4]uint64, [4]float64)

	Cone(depth, delta uint8, lon, lat, radius float64) (*coverage.CellSet, error)
	EllipticalCone(depth, delta uint8, lon, lat, a, b, pa float64) (*coverage.CellSet, error)
	Polygon(depth, delta uint8, lons, lats []float64) (*coverage.CellSet, error)
	Box(depth, delta uint8, lon, lat, a, b, pa float64) (*coverage.CellSet, error)
	Zone(depth, delta uint8, lonMin, latMin, lonMax, latMax float64) (*coverage.CellSet, error)
}

var _ Engine = healpix.Engine{}

// Client runs batch HEALPix operations. It is safe for concurrent use; each
// call partitions its own buffers and shares nothing with other calls.
type Client struct {
	engine  Engine
	workers int
	logger  *Logger
	metrics MetricsCollector
	rc      *resource.Controller
	reg     *buffer.Registry
	store   blobstore.BlobStore
	closed  atomic.Bool
}

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = healpix.Engine{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.memoryLimit < 0 || o.ioLimit < 0 || o.maxConcurrentIO < 0 {
		return nil, errors.New("hpxgo: resource limits must not be negative")
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   o.memoryLimit,
		IOLimitBytesPerSec: o.ioLimit,
		MaxConcurrentIO:    o.maxConcurrentIO,
	})

	c := &Client{
		engine:  o.engine,
		workers: o.workers,
		logger:  o.logger,
		metrics: o.metricsCollector,
		rc:      rc,
		reg:     buffer.NewRegistry(rc),
	}
	if o.store != nil {
		c.store = blobstore.NewThrottledStore(o.store, rc)
	}
	return c, nil
}

// call resolves the per-call options.
func (c *Client) call(opts []CallOption) (callOptions, error) {
	if c.closed.Load() {
		return callOptions{}, ErrClosed
	}
	co := callOptions{workers: c.workers, delta: DefaultDeltaDepth}
	for _, opt := range opts {
		opt(&co)
	}
	return co, nil
}

// batch runs fn with the resolved worker count and records the call.
// fn validates every precondition before writing any output.
func (c *Client) batch(op string, n int, opts []CallOption, fn func(workers int) error) error {
	start := time.Now()
	co, err := c.call(opts)
	workers := 0
	if err == nil {
		workers = dispatch.Workers(co.workers, n)
		err = translateError(op, fn(workers))
	}
	elapsed := time.Since(start)

	c.metrics.RecordBatch(op, n, elapsed, err)
	c.logger.LogBatch(context.Background(), op, n, workers, elapsed, err)
	return err
}

// Release frees a buffer transferred by this Client. Each token must be
// released exactly once.
func (c *Client) Release(tok buffer.Token) error {
	err := c.reg.Release(tok)
	c.metrics.RecordRelease(err)
	c.logger.LogRelease(context.Background(), tok, err)
	return err
}

// Outstanding returns the number of transferred buffers not yet released.
func (c *Client) Outstanding() int { return c.reg.Outstanding() }

// OutstandingBytes returns the size of the transferred buffers not yet
// released.
func (c *Client) OutstandingBytes() int64 { return c.reg.OutstandingBytes() }

// Close shuts the Client down. Buffers still outstanding are reclaimed and
// reported as leaked; their handles must not be used afterwards. Close is
// idempotent.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	bytes := c.reg.OutstandingBytes()
	if n := c.reg.ReleaseAll(); n > 0 {
		c.logger.Warn("transferred buffers were never released",
			"count", n,
			"bytes", bytes,
		)
	}
	return nil
}

// transfer hands s to the caller through the Client's registry.
func transfer[T buffer.Element](c *Client, s []T) (buffer.Handle, error) {
	h, err := buffer.Transfer(c.reg, s)
	c.metrics.RecordTransfer(h.Bytes(), err)
	c.logger.LogTransfer(context.Background(), h, err)
	return h, err
}
