package coverage

import "slices"

// Builder accumulates cells and produces a CellSet. Cells may be pushed in
// any order; Build sorts and validates them.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	maxDepth uint8
	raw      []uint64
	err      error
}

// NewBuilder returns a Builder for cells no deeper than maxDepth.
func NewBuilder(maxDepth uint8, capacity int) *Builder {
	b := &Builder{maxDepth: maxDepth, raw: make([]uint64, 0, capacity)}
	if maxDepth > MaxDepth {
		b.err = &CellError{Cell: Cell{Depth: maxDepth}, MaxDepth: MaxDepth, cause: ErrInvalidCell}
	}
	return b
}

// Push adds a cell. Invalid cells are reported by Build.
func (b *Builder) Push(depth uint8, hash uint64, full bool) {
	if b.err != nil {
		return
	}
	c := Cell{Depth: depth, Hash: hash, Full: full}
	if depth > b.maxDepth || hash >= npix(depth) {
		b.err = &CellError{Cell: c, MaxDepth: b.maxDepth, cause: ErrInvalidCell}
		return
	}
	b.raw = append(b.raw, pack(b.maxDepth, c))
}

// Len returns the number of cells pushed so far.
func (b *Builder) Len() int { return len(b.raw) }

// Build returns the CellSet. The Builder must not be reused afterwards.
func (b *Builder) Build() (*CellSet, error) {
	if b.err != nil {
		return nil, b.err
	}
	raw := b.raw
	b.raw = nil
	if !slices.IsSorted(raw) {
		slices.Sort(raw)
	}
	for i := 1; i < len(raw); i++ {
		prev := unpack(b.maxDepth, raw[i-1])
		cur := unpack(b.maxDepth, raw[i])
		_, prevHi := leafRange(prev, b.maxDepth)
		curLo, _ := leafRange(cur, b.maxDepth)
		if curLo < prevHi {
			return nil, &CellError{Cell: cur, MaxDepth: b.maxDepth, cause: ErrOverlap}
		}
	}
	return &CellSet{maxDepth: b.maxDepth, raw: raw}, nil
}

// FromCells builds a CellSet from a slice of cells.
func FromCells(maxDepth uint8, cells []Cell) (*CellSet, error) {
	b := NewBuilder(maxDepth, len(cells))
	for _, c := range cells {
		b.Push(c.Depth, c.Hash, c.Full)
	}
	return b.Build()
}
