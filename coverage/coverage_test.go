package coverage

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet(t *testing.T) *CellSet {
	t.Helper()
	// Pushed out of order on purpose.
	set, err := FromCells(3, []Cell{
		{Depth: 3, Hash: 200, Full: false},
		{Depth: 1, Hash: 2, Full: true},
		{Depth: 2, Hash: 12, Full: false},
		{Depth: 3, Hash: 52, Full: true},
	})
	require.NoError(t, err)
	return set
}

func TestPackRoundTrip(t *testing.T) {
	for maxDepth := uint8(0); maxDepth <= MaxDepth; maxDepth++ {
		for d := uint8(0); d <= maxDepth; d++ {
			for _, h := range []uint64{0, 1, npix(d) / 2, npix(d) - 1} {
				for _, full := range []bool{false, true} {
					c := Cell{Depth: d, Hash: h, Full: full}
					assert.Equal(t, c, unpack(maxDepth, pack(maxDepth, c)))
				}
			}
		}
	}
}

func TestCellSetOrder(t *testing.T) {
	set := sampleSet(t)

	require.Equal(t, 4, set.Len())
	assert.Equal(t, Cell{Depth: 1, Hash: 2, Full: true}, set.At(0))
	assert.Equal(t, Cell{Depth: 2, Hash: 12, Full: false}, set.At(1))
	assert.Equal(t, Cell{Depth: 3, Hash: 52, Full: true}, set.At(2))
	assert.Equal(t, Cell{Depth: 3, Hash: 200, Full: false}, set.At(3))
	assert.Equal(t, uint8(3), set.DeepestDepth())
	assert.Equal(t, uint8(3), set.MaxDepth())

	cells := slices.Collect(set.All())
	assert.Len(t, cells, 4)
}

func TestHierarchical(t *testing.T) {
	cols := sampleSet(t).Hierarchical()

	assert.Equal(t, []uint64{2, 12, 52, 200}, cols.Hash)
	assert.Equal(t, []uint8{1, 2, 3, 3}, cols.Depth)
	assert.Equal(t, []bool{true, false, true, false}, cols.Full)
}

func TestFlat(t *testing.T) {
	set := sampleSet(t)

	n, err := set.DeepSize(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(16+4+1+1), n)

	flat, err := set.Flat(3)
	require.NoError(t, err)
	require.Equal(t, 22, flat.Len())

	// Depth-1 cell 2 covers depth-3 cells 32..47.
	for i := range 16 {
		assert.Equal(t, uint64(32+i), flat.Hash[i])
		assert.True(t, flat.Full[i])
	}
	assert.Equal(t, []uint64{48, 49, 50, 51, 52, 200}, flat.Hash[16:])
	for _, d := range flat.Depth {
		assert.Equal(t, uint8(3), d)
	}
	assert.True(t, slices.IsSorted(flat.Hash))

	deeper, err := set.Flat(4)
	require.NoError(t, err)
	assert.Equal(t, 22*4, deeper.Len())
}

func TestFlatTooShallow(t *testing.T) {
	set := sampleSet(t)

	_, err := set.Flat(2)
	assert.ErrorIs(t, err, ErrDepthTooShallow)
	_, err = set.Leaves(2)
	assert.ErrorIs(t, err, ErrDepthTooShallow)
	_, err = set.Flat(MaxDepth + 1)
	assert.ErrorIs(t, err, ErrInvalidCell)
}

func TestLeavesMatchesFlat(t *testing.T) {
	set := sampleSet(t)

	seq, err := set.Leaves(4)
	require.NoError(t, err)
	flat, err := set.Flat(4)
	require.NoError(t, err)

	i := 0
	for c := range seq {
		require.Less(t, i, flat.Len())
		assert.Equal(t, flat.Hash[i], c.Hash)
		assert.Equal(t, flat.Full[i], c.Full)
		assert.Equal(t, uint8(4), c.Depth)
		i++
	}
	assert.Equal(t, flat.Len(), i)

	// Restartable, and early exit stops the expansion.
	count := 0
	for range seq {
		count++
		if count == 5 {
			break
		}
	}
	assert.Equal(t, 5, count)
}

func TestEmpty(t *testing.T) {
	set := Empty(7)

	assert.True(t, set.IsEmpty())
	assert.Equal(t, 0, set.Hierarchical().Len())

	flat, err := set.Flat(7)
	require.NoError(t, err)
	assert.Equal(t, 0, flat.Len())
	assert.NotNil(t, flat.Hash)

	n, err := set.DeepSize(0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContains(t *testing.T) {
	set := sampleSet(t)

	found, full := set.Contains(1, 2)
	assert.True(t, found)
	assert.True(t, full)

	found, full = set.Contains(3, 40)
	assert.True(t, found)
	assert.True(t, full)

	found, full = set.Contains(3, 50)
	assert.True(t, found)
	assert.False(t, full)

	found, _ = set.Contains(5, 200*16+3)
	assert.True(t, found)

	found, _ = set.Contains(3, 53)
	assert.False(t, found)

	// A parent of a set cell is not contained.
	found, _ = set.Contains(1, 3)
	assert.False(t, found)

	found, _ = set.Contains(0, 0)
	assert.False(t, found)
}

func TestBitmap(t *testing.T) {
	set := sampleSet(t)

	bm, err := set.Bitmap(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(22), bm.GetCardinality())
	assert.True(t, bm.Contains(47))
	assert.True(t, bm.Contains(200))
	assert.False(t, bm.Contains(53))

	full, err := set.FullBitmap(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), full.GetCardinality())
	assert.True(t, full.Contains(52))
	assert.False(t, full.Contains(48))
}

func TestTooLarge(t *testing.T) {
	set, err := FromCells(MaxDepth, []Cell{{Depth: 0, Hash: 0, Full: true}})
	require.NoError(t, err)

	_, err = set.Flat(MaxDepth)
	assert.ErrorIs(t, err, ErrTooLarge)
	_, err = set.Bitmap(MaxDepth)
	assert.ErrorIs(t, err, ErrTooLarge)

	n, err := set.DeepSize(MaxDepth)
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<58, n)
}

func TestBuilderValidation(t *testing.T) {
	_, err := FromCells(2, []Cell{{Depth: 3, Hash: 0}})
	assert.ErrorIs(t, err, ErrInvalidCell)

	_, err = FromCells(2, []Cell{{Depth: 1, Hash: 48}})
	assert.ErrorIs(t, err, ErrInvalidCell)

	_, err = FromCells(2, []Cell{{Depth: 1, Hash: 5}, {Depth: 2, Hash: 21}})
	assert.ErrorIs(t, err, ErrOverlap)
	var ce *CellError
	require.ErrorAs(t, err, &ce)

	_, err = FromCells(2, []Cell{{Depth: 2, Hash: 7}, {Depth: 2, Hash: 7}})
	assert.ErrorIs(t, err, ErrOverlap)

	b := NewBuilder(MaxDepth+1, 0)
	b.Push(0, 0, true)
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrInvalidCell)
}
