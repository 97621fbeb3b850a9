// Package resource implements the Controller for memory and IO limits.
//
// The Controller governs two resources:
//
//   - Memory: bytes handed to callers through transferred buffers
//     (non-blocking, fail-fast).
//   - IO: throughput and concurrency of blob persistence (token bucket plus
//     a weighted semaphore).
//
// # Memory Management
//
// AcquireMemory is non-blocking and returns ErrMemoryLimitExceeded
// immediately if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB of outstanding transfers
//	})
//
//	if err := rc.AcquireMemory(n); err != nil {
//	    // ErrMemoryLimitExceeded - the caller must release buffers first
//	}
//	defer rc.ReleaseMemory(n)
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 100 * 1024 * 1024, // 100MB/s
//	    MaxConcurrentIO:    4,
//	})
//
//	if err := rc.AcquireIOSlot(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseIOSlot()
//	if err := rc.AcquireIO(ctx, len(payload)); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
