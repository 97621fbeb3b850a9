package blobstore

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/hpxgo/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottledStore(t *testing.T) {
	rc := resource.NewController(resource.Config{
		IOLimitBytesPerSec: 1 << 30,
		MaxConcurrentIO:    2,
	})
	store := NewThrottledStore(NewMemoryStore(), rc)
	testStoreLifecycle(t, store)
}

func TestThrottledStore_NilController(t *testing.T) {
	testStoreLifecycle(t, NewThrottledStore(NewMemoryStore(), nil))
}

func TestThrottledStore_SlotsBlock(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxConcurrentIO: 1})
	store := NewThrottledStore(NewMemoryStore(), rc)

	require.NoError(t, rc.AcquireIOSlot(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := store.Put(ctx, "a", []byte("x"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	rc.ReleaseIOSlot()
	require.NoError(t, store.Put(context.Background(), "a", []byte("x")))
}

func TestThrottledStore_Unwrap(t *testing.T) {
	inner := NewMemoryStore()
	assert.Same(t, inner, NewThrottledStore(inner, nil).Unwrap())
}
