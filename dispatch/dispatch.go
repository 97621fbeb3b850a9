package dispatch

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest range handed to a worker. Smaller batches use
// fewer workers.
const minChunk = 256

// Range is the half-open index range [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// Workers resolves a requested worker count for a batch of n elements.
// A request <= 0 means runtime.GOMAXPROCS(0). The result is at least 1 and
// never exceeds the number of minChunk-sized ranges in the batch.
func Workers(requested, n int) int {
	w := requested
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if chunks := (n + minChunk - 1) / minChunk; w > chunks {
		w = chunks
	}
	return max(w, 1)
}

// Partition splits [0, n) into at most workers contiguous, ordered ranges
// whose lengths differ by at most one.
func Partition(n, workers int) []Range {
	if n <= 0 {
		return nil
	}
	workers = max(min(workers, n), 1)

	ranges := make([]Range, workers)
	size, rem := n/workers, n%workers
	lo := 0
	for i := range ranges {
		hi := lo + size
		if i < rem {
			hi++
		}
		ranges[i] = Range{Lo: lo, Hi: hi}
		lo = hi
	}
	return ranges
}

// Run calls fn once per range of a static partition of [0, n) and blocks
// until every call has returned. workers is resolved with Workers; a single
// worker runs fn inline on the calling goroutine.
func Run(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	w := Workers(workers, n)
	if w == 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	for _, r := range Partition(n, w) {
		wg.Add(1)
		go func(r Range) {
			defer wg.Done()
			fn(r.Lo, r.Hi)
		}(r)
	}
	wg.Wait()
}

// RunErr is Run for range functions that can fail. All ranges run to
// completion; the first error returned is reported.
func RunErr(n, workers int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	w := Workers(workers, n)
	if w == 1 {
		return fn(0, n)
	}

	var g errgroup.Group
	for _, r := range Partition(n, w) {
		g.Go(func() error {
			return fn(r.Lo, r.Hi)
		})
	}
	return g.Wait()
}

// LengthError reports an output or input slice whose length does not match
// the batch.
type LengthError struct {
	Name string
	Got  int
	Want int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("dispatch: %s has length %d, want %d", e.Name, e.Got, e.Want)
}

// CheckLen returns a *LengthError when got != want.
func CheckLen(name string, got, want int) error {
	if got != want {
		return &LengthError{Name: name, Got: got, Want: want}
	}
	return nil
}

// Map sets out[i] = f(in[i]) for every i.
func Map[In, Out any](workers int, in []In, out []Out, f func(In) Out) error {
	if err := CheckLen("out", len(out), len(in)); err != nil {
		return err
	}
	Run(len(in), workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = f(in[i])
		}
	})
	return nil
}

// Map2 sets out[i] = f(a[i], b[i]) for every i.
func Map2[A, B, Out any](workers int, a []A, b []B, out []Out, f func(A, B) Out) error {
	if err := CheckLen("b", len(b), len(a)); err != nil {
		return err
	}
	if err := CheckLen("out", len(out), len(a)); err != nil {
		return err
	}
	Run(len(a), workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = f(a[i], b[i])
		}
	})
	return nil
}

// Rows calls f(in[i], row) where row is the i-th width-wide row of the
// row-major out.
func Rows[In, Out any](workers int, in []In, out []Out, width int, f func(In, []Out)) error {
	if width <= 0 {
		return fmt.Errorf("dispatch: invalid row width %d", width)
	}
	if err := CheckLen("out", len(out), len(in)*width); err != nil {
		return err
	}
	Run(len(in), workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(in[i], out[i*width:(i+1)*width:(i+1)*width])
		}
	})
	return nil
}

// Rows2 is Rows over two aligned inputs.
func Rows2[A, B, Out any](workers int, a []A, b []B, out []Out, width int, f func(A, B, []Out)) error {
	if width <= 0 {
		return fmt.Errorf("dispatch: invalid row width %d", width)
	}
	if err := CheckLen("b", len(b), len(a)); err != nil {
		return err
	}
	if err := CheckLen("out", len(out), len(a)*width); err != nil {
		return err
	}
	Run(len(a), workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(a[i], b[i], out[i*width:(i+1)*width:(i+1)*width])
		}
	})
	return nil
}
