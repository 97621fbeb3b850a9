package buffer

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/hupe1980/hpxgo/internal/resource"
)

var (
	// ErrUnknownToken is returned when releasing a token the registry never
	// issued.
	ErrUnknownToken = errors.New("buffer: unknown release token")
	// ErrDoubleRelease is returned when releasing a token a second time.
	ErrDoubleRelease = errors.New("buffer: buffer released twice")
)

// Token identifies one transferred allocation. The zero Token is never
// issued.
type Token uint64

// Handle is a transferred allocation: the memory now belongs to the caller,
// who must pass Token to Release exactly once.
type Handle struct {
	Ptr   unsafe.Pointer
	Len   int
	Kind  Kind
	Token Token
}

// View returns a view over the handle's memory. It is only valid until the
// handle is released.
func (h Handle) View() View { return View{ptr: h.Ptr, n: h.Len, kind: h.Kind} }

// Bytes returns the size of the allocation in bytes.
func (h Handle) Bytes() int64 { return int64(h.Len) * int64(h.Kind.Size()) }

// Slice returns the handle's memory as a typed slice.
func Slice[T Element](h Handle) ([]T, error) { return As[T](h.View()) }

// allocation keeps the backing array reachable while the caller owns it.
// Heap objects do not move, so a reference is all the caller's pointer needs.
type allocation struct {
	keep  any
	bytes int64
}

// Registry tracks transferred allocations until they are released.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	issued Token
	live   map[Token]*allocation
	bytes  int64
	mem    *resource.Controller
}

// NewRegistry creates a registry. Transferred bytes are accounted against
// mem; a nil controller disables accounting.
func NewRegistry(mem *resource.Controller) *Registry {
	return &Registry{
		live: make(map[Token]*allocation),
		mem:  mem,
	}
}

// Transfer hands s over to the caller. It fails, transferring nothing, when
// the memory limit would be exceeded.
func Transfer[T Element](r *Registry, s []T) (Handle, error) {
	kind := KindOf[T]()
	n := int64(len(s)) * int64(kind.Size())
	if err := r.mem.AcquireMemory(n); err != nil {
		return Handle{}, fmt.Errorf("buffer: transfer of %d bytes: %w", n, err)
	}

	a := &allocation{keep: s, bytes: n}
	ptr := unsafe.Pointer(unsafe.SliceData(s))

	r.mu.Lock()
	r.issued++
	tok := r.issued
	r.live[tok] = a
	r.bytes += n
	r.mu.Unlock()

	return Handle{Ptr: ptr, Len: len(s), Kind: kind, Token: tok}, nil
}

// Release frees the allocation named by tok. Releasing an unknown token or
// a token released before is reported as an error and has no effect.
func (r *Registry) Release(tok Token) error {
	r.mu.Lock()
	a, ok := r.live[tok]
	if !ok {
		issued := r.issued
		r.mu.Unlock()
		if tok == 0 || tok > issued {
			return fmt.Errorf("%w: %d", ErrUnknownToken, tok)
		}
		return fmt.Errorf("%w: token %d", ErrDoubleRelease, tok)
	}
	delete(r.live, tok)
	r.bytes -= a.bytes
	r.mu.Unlock()

	a.keep = nil
	r.mem.ReleaseMemory(a.bytes)
	return nil
}

// MustRelease is Release for callers that treat a contract violation as a
// programming error: it panics instead of returning an error.
func (r *Registry) MustRelease(tok Token) {
	if err := r.Release(tok); err != nil {
		panic(err)
	}
}

// Outstanding returns the number of allocations not yet released.
func (r *Registry) Outstanding() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// OutstandingBytes returns the size of the allocations not yet released.
func (r *Registry) OutstandingBytes() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bytes
}

// ReleaseAll frees every outstanding allocation and returns how many there
// were. Callers still holding handles must not use them afterwards.
func (r *Registry) ReleaseAll() int {
	r.mu.Lock()
	live := r.live
	r.live = make(map[Token]*allocation)
	r.bytes = 0
	r.mu.Unlock()

	for _, a := range live {
		r.mem.ReleaseMemory(a.bytes)
	}
	return len(live)
}
