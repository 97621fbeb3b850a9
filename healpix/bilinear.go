package healpix

// Bilinear returns the four cells whose centers surround (lon, lat) and the
// bilinear interpolation weights of each. Weights sum to 1.
//
// Cells are ordered (x0, y0), (x0+1, y0), (x0, y0+1), (x0+1, y0+1) in the
// in-face frame of the cell containing the point. Near the 8 vertices where
// only three base cells meet, one diagonal cell does not exist: its slot
// holds the containing cell with a zero weight, and its weight is shared by
// the two cells adjacent to it.
func Bilinear(depth uint8, lon, lat float64) (cells [4]uint64, weights [4]float64) {
	hash, dx, dy := HashWithOffsets(depth, lon, lat)
	face, ux, uy := decode(depth, hash)
	x0, y0 := int64(ux), int64(uy)
	fx, fy := dx-0.5, dy-0.5
	if fx < 0 {
		x0--
		fx++
	}
	if fy < 0 {
		y0--
		fy++
	}

	raw := [4]int64{
		cellAt(depth, face, x0, y0),
		cellAt(depth, face, x0+1, y0),
		cellAt(depth, face, x0, y0+1),
		cellAt(depth, face, x0+1, y0+1),
	}
	weights = [4]float64{
		(1 - fx) * (1 - fy),
		fx * (1 - fy),
		(1 - fx) * fy,
		fx * fy,
	}
	for i, c := range raw {
		if c != NoNeighbour {
			cells[i] = uint64(c)
			continue
		}
		cells[i] = hash
		half := weights[i] / 2
		weights[i^1] += half
		weights[i^2] += half
		weights[i] = 0
	}
	return cells, weights
}
