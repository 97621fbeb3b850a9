package healpix

import "math"

// LonLat is a sky position in radians.
type LonLat struct {
	Lon float64
	Lat float64
}

// Hash returns the depth cell containing (lon, lat).
func Hash(depth uint8, lon, lat float64) uint64 {
	h, _, _ := HashWithOffsets(depth, lon, lat)
	return h
}

// HashWithOffsets returns the depth cell containing (lon, lat) and the
// position of the point inside the cell, both offsets in [0, 1].
func HashWithOffsets(depth uint8, lon, lat float64) (hash uint64, dx, dy float64) {
	ns := float64(NSide(depth))
	x, y := LonLatToXY(lon, lat)
	face, xc, yc := faceOf(x, y)
	ox := x - xc
	if ox > 4 {
		ox -= 8
	} else if ox < -4 {
		ox += 8
	}
	oy := y - yc + 1
	a := (ox + oy) / 2 * ns
	b := (oy - ox) / 2 * ns
	ix := clamp(math.Floor(a), 0, ns-1)
	iy := clamp(math.Floor(b), 0, ns-1)
	return encode(depth, face, uint64(ix), uint64(iy)), a - ix, b - iy
}

// Center returns the center of a cell.
func Center(depth uint8, hash uint64) (lon, lat float64) {
	return CenterWithOffsets(depth, hash, 0.5, 0.5)
}

// CenterWithOffsets returns the sky position at offsets (dx, dy) inside a
// cell. (0.5, 0.5) is the center; (0, 0) the South vertex.
func CenterWithOffsets(depth uint8, hash uint64, dx, dy float64) (lon, lat float64) {
	x, y := xyAt(depth, hash, dx, dy)
	return unproject(x, y)
}

// CenterXY returns the center of a cell in the projection plane.
func CenterXY(depth uint8, hash uint64) (x, y float64) {
	return xyAt(depth, hash, 0.5, 0.5)
}

func xyAt(depth uint8, hash uint64, dx, dy float64) (x, y float64) {
	face, ix, iy := decode(depth, hash)
	ns := float64(NSide(depth))
	a := (float64(ix) + dx) / ns
	b := (float64(iy) + dy) / ns
	x = faceX[face] + a - b
	y = faceY[face] - 1 + a + b
	x = math.Mod(x, 8)
	if x < 0 {
		x += 8
	}
	return x, y
}

// Vertices returns the four vertices of a cell in S, E, N, W order.
func Vertices(depth uint8, hash uint64) [4]LonLat {
	var v [4]LonLat
	for i, o := range vertexOffsets {
		v[i].Lon, v[i].Lat = CenterWithOffsets(depth, hash, o[0], o[1])
	}
	return v
}

var vertexOffsets = [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// PathAlongEdges writes 4·step points walking the cell boundary from the
// South vertex through E, N and W. dst must hold at least 4·step points.
func PathAlongEdges(depth uint8, hash uint64, step int, dst []LonLat) {
	s := float64(step)
	for i := 0; i < step; i++ {
		t := float64(i) / s
		dst[i].Lon, dst[i].Lat = CenterWithOffsets(depth, hash, t, 0)
		dst[step+i].Lon, dst[step+i].Lat = CenterWithOffsets(depth, hash, 1, t)
		dst[2*step+i].Lon, dst[2*step+i].Lat = CenterWithOffsets(depth, hash, 1-t, 1)
		dst[3*step+i].Lon, dst[3*step+i].Lat = CenterWithOffsets(depth, hash, 0, 1-t)
	}
}

// Parent returns the ancestor of hash at a shallower depth.
func Parent(depth uint8, hash uint64, parentDepth uint8) uint64 {
	return hash >> (2 * uint(depth-parentDepth))
}

// ChildrenRange returns the half-open range of descendants of hash at the
// deeper childDepth.
func ChildrenRange(depth uint8, hash uint64, childDepth uint8) (lo, hi uint64) {
	shift := 2 * uint(childDepth-depth)
	return hash << shift, (hash + 1) << shift
}
