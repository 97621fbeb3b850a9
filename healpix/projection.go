package healpix

import "math"

// Base-cell centers in the projection plane.
var (
	faceX = [NumBaseCells]float64{1, 3, 5, 7, 0, 2, 4, 6, 1, 3, 5, 7}
	faceY = [NumBaseCells]float64{1, 1, 1, 1, 0, 0, 0, 0, -1, -1, -1, -1}
)

// LonLatToXY projects a sky position onto the HEALPix plane, with
// x in [0, 8) and y in [-2, 2].
func LonLatToXY(lon, lat float64) (x, y float64) {
	x = normalizeLon(lon) * fourOnPi
	z := math.Sin(lat)
	if math.Abs(z) <= 2.0/3.0 {
		return x, 1.5 * z
	}
	sigma := math.Sqrt(3 * (1 - math.Abs(z)))
	xc := 2*math.Floor(x/2) + 1
	x = xc + (x-xc)*sigma
	return x, math.Copysign(2-sigma, z)
}

// XYToLonLat is the inverse of LonLatToXY. ok is false when (x, y) falls
// outside the projection domain.
func XYToLonLat(x, y float64) (lon, lat float64, ok bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.Abs(y) > 2 {
		return 0, 0, false
	}
	x = math.Mod(x, 8)
	if x < 0 {
		x += 8
	}
	ay := math.Abs(y)
	if ay <= 1 {
		return normalizeLon(x * piOnFour), math.Asin(y * 2 / 3), true
	}
	sigma := 2 - ay
	xc := 2*math.Floor(x/2) + 1
	if math.Abs(x-xc) > sigma+1e-12 {
		return 0, 0, false
	}
	if sigma > 1e-15 {
		x = xc + (x-xc)/sigma
	} else {
		x = xc
	}
	z := math.Copysign(1-sigma*sigma/3, y)
	return normalizeLon(x * piOnFour), math.Asin(clamp(z, -1, 1)), true
}

// unproject maps a point known to be inside the domain.
func unproject(x, y float64) (lon, lat float64) {
	if math.Abs(y) <= 1 {
		return normalizeLon(x * piOnFour), math.Asin(y * 2 / 3)
	}
	sigma := 2 - math.Abs(y)
	xc := 2*math.Floor(x/2) + 1
	if sigma > 1e-15 {
		x = xc + (x-xc)/sigma
	} else {
		x = xc
	}
	z := math.Copysign(1-sigma*sigma/3, y)
	return normalizeLon(x * piOnFour), math.Asin(clamp(z, -1, 1))
}

// faceOf returns the base cell containing the projected point together with
// the center of that base cell.
func faceOf(x, y float64) (face int, xc, yc float64) {
	col := int(math.Floor(x/2)) & 3
	xp := x - (2*math.Floor(x/2) + 1)
	if y > 0 {
		if math.Abs(xp)+math.Abs(y-1) <= 1 {
			return col, float64(2*col + 1), 1
		}
	} else if math.Abs(xp)+math.Abs(y+1) <= 1 {
		return 8 + col, float64(2*col + 1), -1
	}
	if xp > 0 {
		col = (col + 1) & 3
	}
	return 4 + col, float64(2 * col), 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
