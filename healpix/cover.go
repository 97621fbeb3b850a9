package healpix

import (
	"fmt"
	"math"

	"github.com/hupe1980/hpxgo/coverage"
)

// coverer walks the hierarchy depth first from the base cells, so cells are
// emitted already sorted in canonical order.
type coverer struct {
	region region
	depth  uint8
	target uint8
	out    *coverage.Builder
}

func cover(depth, delta uint8, r region) (*coverage.CellSet, error) {
	if err := CheckDepth(int(depth)); err != nil {
		return nil, err
	}
	target := int(depth) + int(delta)
	if target > MaxDepth {
		target = MaxDepth
	}
	cv := &coverer{region: r, depth: depth, target: uint8(target), out: coverage.NewBuilder(depth, 64)}
	for h := uint64(0); h < NumBaseCells; h++ {
		cv.visit(0, h)
	}
	return cv.out.Build()
}

func (cv *coverer) visit(d uint8, h uint64) {
	center, radius := cellBound(d, h)
	switch cv.region.classify(center, radius) {
	case outside:
		return
	case inside:
		cv.out.Push(d, h, true)
		return
	}
	if d < cv.depth {
		for c := 4 * h; c < 4*h+4; c++ {
			cv.visit(d+1, c)
		}
		return
	}
	if cv.target == d {
		cv.out.Push(d, h, false)
		return
	}
	// At the output depth, refine deeper to drop cells that only seem to
	// overlap and to promote cells whose sub-cells are all inside.
	var overlaps bool
	all := true
	for c := 4 * h; c < 4*h+4; c++ {
		a, f := cv.refine(d+1, c)
		overlaps = overlaps || a
		all = all && f
	}
	if overlaps {
		cv.out.Push(d, h, all)
	}
}

func (cv *coverer) refine(d uint8, h uint64) (overlaps, full bool) {
	center, radius := cellBound(d, h)
	switch cv.region.classify(center, radius) {
	case outside:
		return false, false
	case inside:
		return true, true
	}
	if d == cv.target {
		return true, false
	}
	all := true
	for c := 4 * h; c < 4*h+4; c++ {
		a, f := cv.refine(d+1, c)
		overlaps = overlaps || a
		all = all && f
	}
	return overlaps, overlaps && all
}

func fullSphere(depth uint8) (*coverage.CellSet, error) {
	b := coverage.NewBuilder(depth, NumBaseCells)
	for h := uint64(0); h < NumBaseCells; h++ {
		b.Push(0, h, true)
	}
	return b.Build()
}

func checkCenter(lon, lat float64) error {
	if !ValidLonLat(lon, lat) {
		return fmt.Errorf("%w: invalid center (%g, %g)", ErrInvalidRegion, lon, lat)
	}
	return nil
}

// Cone returns the cells overlapping the disc of the given radius around
// (lon, lat). delta sets how many depths below depth the overlap tests are
// refined. A zero radius yields an empty set; a radius of π or more covers
// the whole sphere.
func Cone(depth, delta uint8, lon, lat, radius float64) (*coverage.CellSet, error) {
	if err := CheckDepth(int(depth)); err != nil {
		return nil, err
	}
	if err := checkCenter(lon, lat); err != nil {
		return nil, err
	}
	switch {
	case math.IsNaN(radius) || radius < 0:
		return nil, fmt.Errorf("%w: cone radius %g", ErrInvalidRegion, radius)
	case radius == 0:
		return coverage.Empty(depth), nil
	case radius >= math.Pi:
		return fullSphere(depth)
	}
	return cover(depth, delta, coneRegion{center: toVec(lon, lat), radius: radius})
}

// EllipticalCone returns the cells overlapping the spherical ellipse of
// semi-major axis a and semi-minor axis b centered on (lon, lat), its major
// axis at position angle pa (from north through east).
func EllipticalCone(depth, delta uint8, lon, lat, a, b, pa float64) (*coverage.CellSet, error) {
	if err := CheckDepth(int(depth)); err != nil {
		return nil, err
	}
	if err := checkCenter(lon, lat); err != nil {
		return nil, err
	}
	r, err := newEllipse(lon, lat, a, b, pa)
	if err != nil {
		return nil, err
	}
	return cover(depth, delta, r)
}

// Polygon returns the cells overlapping the spherical polygon whose vertices
// are given in order. Edges are great-circle arcs. The polygon must be
// smaller than a hemisphere.
func Polygon(depth, delta uint8, lons, lats []float64) (*coverage.CellSet, error) {
	if err := CheckDepth(int(depth)); err != nil {
		return nil, err
	}
	r, err := newPolygon(lons, lats)
	if err != nil {
		return nil, err
	}
	return cover(depth, delta, r)
}

// Box returns the cells overlapping the box of half-sizes a (along position
// angle pa) and b (perpendicular), centered on (lon, lat).
func Box(depth, delta uint8, lon, lat, a, b, pa float64) (*coverage.CellSet, error) {
	if err := CheckDepth(int(depth)); err != nil {
		return nil, err
	}
	if err := checkCenter(lon, lat); err != nil {
		return nil, err
	}
	r, err := newBox(lon, lat, a, b, pa)
	if err != nil {
		return nil, err
	}
	return cover(depth, delta, r)
}

// Zone returns the cells overlapping the longitude/latitude rectangle. A
// lonMin greater than lonMax denotes a zone crossing the zero meridian; a
// longitude span of 2π or more selects every longitude.
func Zone(depth, delta uint8, lonMin, latMin, lonMax, latMax float64) (*coverage.CellSet, error) {
	if err := CheckDepth(int(depth)); err != nil {
		return nil, err
	}
	r, err := newZone(lonMin, latMin, lonMax, latMax)
	if err != nil {
		return nil, err
	}
	if r.fullLon && latMin <= -halfPi && latMax >= halfPi {
		return fullSphere(depth)
	}
	return cover(depth, delta, r)
}
