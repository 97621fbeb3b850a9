package blobstore

import (
	"context"
	"io"

	"github.com/hupe1980/hpxgo/internal/resource"
)

// ThrottledStore wraps a BlobStore and charges every byte moved against the
// IO limits of a resource controller. Each store call also holds one
// concurrent-IO slot while it runs.
type ThrottledStore struct {
	inner BlobStore
	rc    *resource.Controller
}

// NewThrottledStore creates a new ThrottledStore. A nil controller makes it
// a pass-through.
func NewThrottledStore(inner BlobStore, rc *resource.Controller) *ThrottledStore {
	return &ThrottledStore{inner: inner, rc: rc}
}

// Unwrap returns the wrapped store.
func (s *ThrottledStore) Unwrap() BlobStore { return s.inner }

func (s *ThrottledStore) withSlot(ctx context.Context, fn func() error) error {
	if err := s.rc.AcquireIOSlot(ctx); err != nil {
		return err
	}
	defer s.rc.ReleaseIOSlot()
	return fn()
}

func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	var b Blob
	err := s.withSlot(ctx, func() error {
		var err error
		b, err = s.inner.Open(ctx, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &throttledBlob{inner: b, store: s}, nil
}

func (s *ThrottledStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledWritableBlob{
		inner: w,
		w:     resource.NewRateLimitedWriter(ctx, w, s.rc),
	}, nil
}

func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	return s.withSlot(ctx, func() error {
		if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
			return err
		}
		return s.inner.Put(ctx, name, data)
	})
}

func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	return s.withSlot(ctx, func() error {
		return s.inner.Delete(ctx, name)
	})
}

func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := s.withSlot(ctx, func() error {
		var err error
		names, err = s.inner.List(ctx, prefix)
		return err
	})
	return names, err
}

// throttledBlob charges reads against the IO limit.
type throttledBlob struct {
	inner Blob
	store *ThrottledStore
}

func (b *throttledBlob) Close() error { return b.inner.Close() }

func (b *throttledBlob) Size() int64 { return b.inner.Size() }

func (b *throttledBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	var n int
	err := b.store.withSlot(ctx, func() error {
		var err error
		n, err = b.inner.ReadAt(ctx, p, off)
		if n > 0 {
			if werr := b.store.rc.AcquireIO(ctx, n); werr != nil {
				return werr
			}
		}
		return err
	})
	return n, err
}

func (b *throttledBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	rc, err := b.inner.ReadRange(ctx, off, length)
	if err != nil {
		return nil, err
	}
	return &throttledReadCloser{
		Reader: resource.NewRateLimitedReader(ctx, rc, b.store.rc),
		c:      rc,
	}, nil
}

type throttledReadCloser struct {
	io.Reader
	c io.Closer
}

func (r *throttledReadCloser) Close() error { return r.c.Close() }

type throttledWritableBlob struct {
	inner WritableBlob
	w     io.Writer
}

func (w *throttledWritableBlob) Write(p []byte) (int, error) { return w.w.Write(p) }

func (w *throttledWritableBlob) Sync() error { return w.inner.Sync() }

func (w *throttledWritableBlob) Close() error { return w.inner.Close() }
