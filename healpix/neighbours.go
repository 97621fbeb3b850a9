package healpix

// Neighbour slot indexes in compass order.
const (
	S = iota
	SE
	E
	SW
	C
	NE
	W
	NW
	N
)

// NoNeighbour marks an absent neighbour or corner.
const NoNeighbour int64 = -1

// Face lookup for a coordinate overflowing its base cell. The first index is
// 4 + (-1|0|+1 for an x overflow) + 3·(-1|0|+1 for a y overflow).
var neighbourFace = [9][NumBaseCells]int{
	{8, 9, 10, 11, -1, -1, -1, -1, 10, 11, 8, 9},
	{5, 6, 7, 4, 8, 9, 10, 11, 9, 10, 11, 8},
	{-1, -1, -1, -1, 5, 6, 7, 4, -1, -1, -1, -1},
	{4, 5, 6, 7, 11, 8, 9, 10, 11, 8, 9, 10},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	{1, 2, 3, 0, 0, 1, 2, 3, 5, 6, 7, 4},
	{-1, -1, -1, -1, 7, 4, 5, 6, -1, -1, -1, -1},
	{3, 0, 1, 2, 3, 0, 1, 2, 4, 5, 6, 7},
	{2, 3, 0, 1, -1, -1, -1, -1, 0, 1, 2, 3},
}

// Coordinate transform when crossing into the neighbouring base cell, per
// face row: bit 1 mirrors x, bit 2 mirrors y, bit 4 swaps x and y.
var neighbourSwap = [9][3]int{
	{0, 0, 3}, {0, 0, 6}, {0, 0, 0},
	{0, 0, 5}, {0, 0, 0}, {5, 0, 0},
	{0, 0, 0}, {6, 0, 0}, {3, 0, 0},
}

// cellAt returns the cell at in-face coordinates (x, y) of face, where each
// coordinate may overflow the face by at most one row. It returns
// NoNeighbour when no base cell lies in that direction.
func cellAt(depth uint8, face int, x, y int64) int64 {
	ns := int64(NSide(depth))
	nb := 4
	switch {
	case x < 0:
		x += ns
		nb--
	case x >= ns:
		x -= ns
		nb++
	}
	switch {
	case y < 0:
		y += ns
		nb -= 3
	case y >= ns:
		y -= ns
		nb += 3
	}
	f := neighbourFace[nb][face]
	if f < 0 {
		return NoNeighbour
	}
	bits := neighbourSwap[nb][face>>2]
	if bits&1 != 0 {
		x = ns - x - 1
	}
	if bits&2 != 0 {
		y = ns - y - 1
	}
	if bits&4 != 0 {
		x, y = y, x
	}
	return int64(encode(depth, f, uint64(x), uint64(y)))
}

// Neighbours returns the 8 neighbours of a cell and the cell itself, in
// S, SE, E, SW, C, NE, W, NW, N order. Absent neighbours are NoNeighbour.
func Neighbours(depth uint8, hash uint64) [9]int64 {
	var out [9]int64
	face, ix, iy := decode(depth, hash)
	i := 0
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			out[i] = cellAt(depth, face, int64(ix)+dx, int64(iy)+dy)
			i++
		}
	}
	return out
}

// NumExternalEdgeCells returns the number of edge cells ExternalEdge writes
// for a depth delta.
func NumExternalEdgeCells(delta uint8) int { return 4 << delta }

// ExternalEdge writes the cells at depth+delta that lie just outside the
// cell and share an edge with it. edges must hold NumExternalEdgeCells(delta)
// values, laid out as the SE, NE, NW and SW edges, each walked in increasing
// in-face coordinate. It returns the corner cells in S, E, N, W order,
// NoNeighbour where no cell touches that vertex from outside.
func ExternalEdge(depth uint8, hash uint64, delta uint8, edges []uint64) [4]int64 {
	deep := depth + delta
	face, ix, iy := decode(depth, hash)
	side := int64(1) << delta
	x0 := int64(ix) << delta
	y0 := int64(iy) << delta
	x1 := x0 + side - 1
	y1 := y0 + side - 1
	for k := int64(0); k < side; k++ {
		edges[k] = uint64(cellAt(deep, face, x0+k, y0-1))
		edges[side+k] = uint64(cellAt(deep, face, x1+1, y0+k))
		edges[2*side+k] = uint64(cellAt(deep, face, x0+k, y1+1))
		edges[3*side+k] = uint64(cellAt(deep, face, x0-1, y0+k))
	}
	return [4]int64{
		cellAt(deep, face, x0-1, y0-1),
		cellAt(deep, face, x1+1, y0-1),
		cellAt(deep, face, x1+1, y1+1),
		cellAt(deep, face, x0-1, y1+1),
	}
}
