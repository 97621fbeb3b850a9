package healpix

import "github.com/hupe1980/hpxgo/coverage"

// Engine exposes the package functions as methods, so that callers can
// depend on an interface and substitute another implementation.
type Engine struct{}

func (Engine) Hash(depth uint8, lon, lat float64) (uint64, float64, float64) {
	return HashWithOffsets(depth, lon, lat)
}

func (Engine) Center(depth uint8, hash uint64, dx, dy float64) (float64, float64) {
	return CenterWithOffsets(depth, hash, dx, dy)
}

func (Engine) PathAlongEdges(depth uint8, hash uint64, step int, dst []LonLat) {
	PathAlongEdges(depth, hash, step, dst)
}

func (Engine) Neighbours(depth uint8, hash uint64) [9]int64 { return Neighbours(depth, hash) }

func (Engine) ExternalEdge(depth uint8, hash uint64, delta uint8, edges []uint64) [4]int64 {
	return ExternalEdge(depth, hash, delta, edges)
}

func (Engine) ToRing(depth uint8, hash uint64) uint64 { return ToRing(depth, hash) }

func (Engine) FromRing(depth uint8, ring uint64) uint64 { return FromRing(depth, ring) }

func (Engine) CenterXY(depth uint8, hash uint64) (float64, float64) { return CenterXY(depth, hash) }

func (Engine) LonLatToXY(lon, lat float64) (float64, float64) { return LonLatToXY(lon, lat) }

func (Engine) XYToLonLat(x, y float64) (float64, float64, bool) { return XYToLonLat(x, y) }

func (Engine) Bilinear(depth uint8, lon, lat float64) ([4]uint64, [4]float64) {
	return Bilinear(depth, lon, lat)
}

func (Engine) Cone(depth, delta uint8, lon, lat, radius float64) (*coverage.CellSet, error) {
	return Cone(depth, delta, lon, lat, radius)
}

func (Engine) EllipticalCone(depth, delta uint8, lon, lat, a, b, pa float64) (*coverage.CellSet, error) {
	return EllipticalCone(depth, delta, lon, lat, a, b, pa)
}

func (Engine) Polygon(depth, delta uint8, lons, lats []float64) (*coverage.CellSet, error) {
	return Polygon(depth, delta, lons, lats)
}

func (Engine) Box(depth, delta uint8, lon, lat, a, b, pa float64) (*coverage.CellSet, error) {
	return Box(depth, delta, lon, lat, a, b, pa)
}

func (Engine) Zone(depth, delta uint8, lonMin, latMin, lonMax, latMax float64) (*coverage.CellSet, error) {
	return Zone(depth, delta, lonMin, latMin, lonMax, latMax)
}
