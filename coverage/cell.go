package coverage

import (
	"errors"
	"fmt"
	"math/bits"
)

// MaxDepth is the deepest depth a cell can have.
const MaxDepth = 29

var (
	// ErrDepthTooShallow is returned when flattening to a depth shallower
	// than the deepest cell of the set.
	ErrDepthTooShallow = errors.New("coverage: flatten depth shallower than deepest cell")
	// ErrInvalidCell is returned by Builder for a cell outside its layer or
	// deeper than the set's maximum depth.
	ErrInvalidCell = errors.New("coverage: invalid cell")
	// ErrOverlap is returned by Builder when two cells cover the same area.
	ErrOverlap = errors.New("coverage: overlapping cells")
	// ErrTooLarge is returned when a flat materialization cannot be held in
	// memory.
	ErrTooLarge = errors.New("coverage: flat materialization too large")
)

// MaxFlatLen bounds the number of rows Flat and Bitmap will materialize.
const MaxFlatLen = 1 << 32

// Cell is a cell of a coverage result.
type Cell struct {
	Depth uint8
	Hash  uint64
	// Full is true when the cell lies entirely inside the queried region.
	Full bool
}

func (c Cell) String() string {
	flag := "partial"
	if c.Full {
		flag = "full"
	}
	return fmt.Sprintf("%d/%d(%s)", c.Depth, c.Hash, flag)
}

// CellError reports a cell rejected by Builder.
type CellError struct {
	Cell     Cell
	MaxDepth uint8
	cause    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%v: %s (max depth %d)", e.cause, e.Cell, e.MaxDepth)
}

func (e *CellError) Unwrap() error { return e.cause }

func npix(depth uint8) uint64 { return 12 << (2 * uint(depth)) }

// pack encodes a cell relative to maxDepth.
func pack(maxDepth uint8, c Cell) uint64 {
	delta := uint(maxDepth - c.Depth)
	raw := (c.Hash<<1 | 1) << (2*delta + 1)
	if c.Full {
		raw |= 1
	}
	return raw
}

// unpack is the inverse of pack.
func unpack(maxDepth uint8, raw uint64) Cell {
	full := raw&1 == 1
	raw >>= 1
	delta := uint(bits.TrailingZeros64(raw)) / 2
	return Cell{
		Depth: maxDepth - uint8(delta),
		Hash:  raw >> (2*delta + 1),
		Full:  full,
	}
}

// leafRange returns the half-open range of c's descendants at depth.
func leafRange(c Cell, depth uint8) (lo, hi uint64) {
	shift := 2 * uint(depth-c.Depth)
	return c.Hash << shift, (c.Hash + 1) << shift
}
