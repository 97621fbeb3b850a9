package hpxgo

import (
	"context"
	"time"

	"github.com/hupe1980/hpxgo/buffer"
	"github.com/hupe1980/hpxgo/skymap"
)

// SkymapDepth returns the depth of a value array of one of the six skymap
// kinds, derived from its length.
func (c *Client) SkymapDepth(v buffer.View) (uint8, error) {
	s, err := skymap.FromView(v)
	if err != nil {
		return 0, err
	}
	return s.Depth(), nil
}

// ReadSkymap loads a skymap file. A missing file yields ErrNotFound.
func (c *Client) ReadSkymap(path string) (skymap.Skymap, error) {
	return c.readSkymap(context.Background(), path, func() (skymap.Skymap, error) {
		return skymap.Load(path)
	})
}

// WriteSkymap saves s to path atomically.
func (c *Client) WriteSkymap(s skymap.Skymap, path string, opts ...skymap.Option) error {
	return c.writeSkymap(context.Background(), path, s, func() error {
		return skymap.Save(s, path, opts...)
	})
}

// WriteSkymapView saves a caller-owned value array. The element kind is the
// view's own kind.
func (c *Client) WriteSkymapView(v buffer.View, path string, opts ...skymap.Option) error {
	s, err := skymap.FromView(v)
	if err != nil {
		return err
	}
	return c.WriteSkymap(s, path, opts...)
}

// ReadSkymapBlob loads a skymap from the configured blob store, throttled by
// the IO limit.
func (c *Client) ReadSkymapBlob(ctx context.Context, name string) (skymap.Skymap, error) {
	return c.readSkymap(ctx, name, func() (skymap.Skymap, error) {
		if c.store == nil {
			return nil, ErrNoBlobStore
		}
		return skymap.LoadBlob(ctx, c.store, name)
	})
}

// WriteSkymapBlob saves s to the configured blob store, throttled by the IO
// limit.
func (c *Client) WriteSkymapBlob(ctx context.Context, name string, s skymap.Skymap, opts ...skymap.Option) error {
	return c.writeSkymap(ctx, name, s, func() error {
		if c.store == nil {
			return ErrNoBlobStore
		}
		return skymap.SaveBlob(ctx, c.store, name, s, opts...)
	})
}

func (c *Client) readSkymap(ctx context.Context, name string, load func() (skymap.Skymap, error)) (skymap.Skymap, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()
	s, err := load()
	c.metrics.RecordSkymap("read", time.Since(start), err)
	c.logger.LogSkymap(ctx, "read", name, s, err)
	return s, err
}

func (c *Client) writeSkymap(ctx context.Context, name string, s skymap.Skymap, store func() error) error {
	if c.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	err := store()
	c.metrics.RecordSkymap("write", time.Since(start), err)
	c.logger.LogSkymap(ctx, "write", name, s, err)
	return err
}

// Rasterize draws s as a Mollweide all-sky image of 2*width by width pixels.
// The Client's worker count applies unless opts set their own.
func (c *Client) Rasterize(s skymap.Skymap, width int, opts ...skymap.RasterOption) (*skymap.Image, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()
	opts = append([]skymap.RasterOption{skymap.WithWorkers(c.workers)}, opts...)
	img, err := skymap.Rasterize(s, width, opts...)
	c.metrics.RecordSkymap("rasterize", time.Since(start), err)
	c.logger.LogSkymap(context.Background(), "rasterize", "", s, err)
	return img, err
}

// RasterizeTransfer runs Rasterize and hands the pixels over to the caller
// as width*2*width*4 bytes, row-major RGBA. The handle must be released.
func (c *Client) RasterizeTransfer(s skymap.Skymap, width int, opts ...skymap.RasterOption) (buffer.Handle, error) {
	img, err := c.Rasterize(s, width, opts...)
	if err != nil {
		return buffer.Handle{}, err
	}
	return transfer(c, img.Pix())
}
