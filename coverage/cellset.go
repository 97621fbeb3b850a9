package coverage

import (
	"iter"
	"math"
	"math/bits"
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// CellSet is an immutable, sorted set of non-overlapping cells.
type CellSet struct {
	maxDepth uint8
	raw      []uint64
}

// Empty returns a set without cells.
func Empty(maxDepth uint8) *CellSet {
	return &CellSet{maxDepth: maxDepth}
}

// MaxDepth returns the depth the set was built for. No cell is deeper.
func (s *CellSet) MaxDepth() uint8 { return s.maxDepth }

// Len returns the number of cells in hierarchical form.
func (s *CellSet) Len() int { return len(s.raw) }

// IsEmpty reports whether the set holds no cell.
func (s *CellSet) IsEmpty() bool { return len(s.raw) == 0 }

// At returns the i-th cell in canonical order.
func (s *CellSet) At(i int) Cell { return unpack(s.maxDepth, s.raw[i]) }

// All iterates the cells in canonical order.
func (s *CellSet) All() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, r := range s.raw {
			if !yield(unpack(s.maxDepth, r)) {
				return
			}
		}
	}
}

// DeepestDepth returns the depth of the deepest cell, 0 for an empty set.
func (s *CellSet) DeepestDepth() uint8 {
	var d uint8
	for _, r := range s.raw {
		if c := unpack(s.maxDepth, r); c.Depth > d {
			d = c.Depth
		}
	}
	return d
}

// DeepSize returns the number of cells of the set flattened to depth, that
// is the sum of 4^(depth-d) over its cells. It saturates at math.MaxUint64.
func (s *CellSet) DeepSize(depth uint8) (uint64, error) {
	if err := s.checkFlatDepth(depth); err != nil {
		return 0, err
	}
	var n uint64
	for _, r := range s.raw {
		c := unpack(s.maxDepth, r)
		sum, carry := bits.Add64(n, 1<<(2*uint(depth-c.Depth)), 0)
		if carry != 0 {
			return math.MaxUint64, nil
		}
		n = sum
	}
	return n, nil
}

// Contains reports whether the depth cell hash lies in the set, and whether
// the set cell holding it is full. A cell counts as contained when it is
// equal to, or a descendant of, a set cell.
func (s *CellSet) Contains(depth uint8, hash uint64) (found, full bool) {
	if depth > MaxDepth {
		return false, false
	}
	// Compare leaf ranges at the deeper of the two depths.
	deep := max(depth, s.maxDepth)
	lo, _ := leafRange(Cell{Depth: depth, Hash: hash}, deep)
	i := sort.Search(len(s.raw), func(i int) bool {
		c := unpack(s.maxDepth, s.raw[i])
		_, chi := leafRange(c, deep)
		return chi > lo
	})
	if i == len(s.raw) {
		return false, false
	}
	c := unpack(s.maxDepth, s.raw[i])
	if c.Depth > depth {
		return false, false
	}
	clo, chi := leafRange(c, deep)
	if lo < clo || lo >= chi {
		return false, false
	}
	return true, c.Full
}

// Columns is a column-oriented materialization: three parallel arrays with
// one row per cell.
type Columns struct {
	Hash  []uint64
	Depth []uint8
	Full  []bool
}

// Len returns the number of rows.
func (c Columns) Len() int { return len(c.Hash) }

// Hierarchical materializes one row per cell, in canonical order.
func (s *CellSet) Hierarchical() Columns {
	cols := makeColumns(len(s.raw))
	for i, r := range s.raw {
		c := unpack(s.maxDepth, r)
		cols.Hash[i] = c.Hash
		cols.Depth[i] = c.Depth
		cols.Full[i] = c.Full
	}
	return cols
}

// Leaves returns a lazy sequence of the set's cells expanded to depth. Each
// cell yields its descendants in increasing hash order. The sequence is
// restartable.
func (s *CellSet) Leaves(depth uint8) (iter.Seq[Cell], error) {
	if err := s.checkFlatDepth(depth); err != nil {
		return nil, err
	}
	return func(yield func(Cell) bool) {
		for _, r := range s.raw {
			c := unpack(s.maxDepth, r)
			lo, hi := leafRange(c, depth)
			for h := lo; h < hi; h++ {
				if !yield(Cell{Depth: depth, Hash: h, Full: c.Full}) {
					return
				}
			}
		}
	}, nil
}

// Flat materializes the set expanded to depth: DeepSize(depth) rows, all at
// depth, in canonical order.
func (s *CellSet) Flat(depth uint8) (Columns, error) {
	n, err := s.flatLen(depth)
	if err != nil {
		return Columns{}, err
	}
	cols := makeColumns(n)
	i := 0
	for _, r := range s.raw {
		c := unpack(s.maxDepth, r)
		lo, hi := leafRange(c, depth)
		for h := lo; h < hi; h++ {
			cols.Hash[i] = h
			cols.Depth[i] = depth
			cols.Full[i] = c.Full
			i++
		}
	}
	return cols, nil
}

// Bitmap returns the hashes of the set flattened to depth as a compressed
// bitmap. Each cell is added as one range, so the cost is proportional to
// the hierarchical size.
func (s *CellSet) Bitmap(depth uint8) (*roaring64.Bitmap, error) {
	if _, err := s.flatLen(depth); err != nil {
		return nil, err
	}
	bm := roaring64.New()
	for _, r := range s.raw {
		lo, hi := leafRange(unpack(s.maxDepth, r), depth)
		bm.AddRange(lo, hi)
	}
	return bm, nil
}

// FullBitmap is like Bitmap but only holds the cells flagged full.
func (s *CellSet) FullBitmap(depth uint8) (*roaring64.Bitmap, error) {
	if _, err := s.flatLen(depth); err != nil {
		return nil, err
	}
	bm := roaring64.New()
	for _, r := range s.raw {
		c := unpack(s.maxDepth, r)
		if !c.Full {
			continue
		}
		lo, hi := leafRange(c, depth)
		bm.AddRange(lo, hi)
	}
	return bm, nil
}

func (s *CellSet) checkFlatDepth(depth uint8) error {
	if depth > MaxDepth {
		return &CellError{Cell: Cell{Depth: depth}, MaxDepth: MaxDepth, cause: ErrInvalidCell}
	}
	if len(s.raw) > 0 && depth < s.DeepestDepth() {
		return ErrDepthTooShallow
	}
	return nil
}

func (s *CellSet) flatLen(depth uint8) (int, error) {
	n, err := s.DeepSize(depth)
	if err != nil {
		return 0, err
	}
	if n > MaxFlatLen || n > uint64(math.MaxInt) {
		return 0, ErrTooLarge
	}
	return int(n), nil
}

func makeColumns(n int) Columns {
	return Columns{
		Hash:  make([]uint64, n),
		Depth: make([]uint8, n),
		Full:  make([]bool, n),
	}
}
