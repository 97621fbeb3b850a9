package healpix

import (
	"fmt"
	"math"
)

type overlap uint8

const (
	outside overlap = iota
	partial
	inside
)

// region classifies a disc, given by its center and radius, against a sky
// region.
type region interface {
	classify(center vec3, radius float64) overlap
}

// byBoundary classifies a disc from whether its center lies in the region
// and a lower bound of the distance from the center to the region boundary.
func byBoundary(in bool, dist, radius float64) overlap {
	switch {
	case dist <= radius:
		return partial
	case in:
		return inside
	default:
		return outside
	}
}

type coneRegion struct {
	center vec3
	radius float64
}

func (r coneRegion) classify(c vec3, cr float64) overlap {
	d := angle(r.center, c)
	return byBoundary(d <= r.radius, math.Abs(d-r.radius), cr)
}

// ellipseRegion is the set of points whose distances to the two foci sum to
// at most 2a. The sum is 2-Lipschitz, so half its excess bounds the distance
// to the boundary.
type ellipseRegion struct {
	f1, f2 vec3
	a      float64
}

func newEllipse(lon, lat, a, b, pa float64) (ellipseRegion, error) {
	if !(b > 0 && a >= b && a < halfPi) || math.IsNaN(pa) {
		return ellipseRegion{}, fmt.Errorf("%w: ellipse requires 0 < b <= a < π/2, got a=%g b=%g", ErrInvalidRegion, a, b)
	}
	c := math.Acos(clamp(math.Cos(a)/math.Cos(b), -1, 1))
	center := toVec(lon, lat)
	north, east := localAxes(lon, lat)
	sp, cp := math.Sincos(pa)
	major := north.scale(cp).add(east.scale(sp))
	sc, cc := math.Sincos(c)
	return ellipseRegion{
		f1: center.scale(cc).add(major.scale(sc)),
		f2: center.scale(cc).sub(major.scale(sc)),
		a:  a,
	}, nil
}

func (r ellipseRegion) classify(c vec3, cr float64) overlap {
	s := angle(c, r.f1) + angle(c, r.f2)
	return byBoundary(s <= 2*r.a, math.Abs(s-2*r.a)/2, cr)
}

// polygonRegion is a spherical polygon with great-circle edges. Containment
// counts edge crossings of the arc from the point to a reference point
// outside the polygon, the antipode of the vertex centroid.
type polygonRegion struct {
	vertices []vec3
	ref      vec3
	alt      vec3
}

func newPolygon(lons, lats []float64) (polygonRegion, error) {
	if len(lons) != len(lats) {
		return polygonRegion{}, fmt.Errorf("%w: %d longitudes for %d latitudes", ErrInvalidRegion, len(lons), len(lats))
	}
	if len(lons) < 3 {
		return polygonRegion{}, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", ErrInvalidRegion, len(lons))
	}
	p := polygonRegion{vertices: make([]vec3, len(lons))}
	var sum vec3
	for i := range lons {
		if !ValidLonLat(lons[i], lats[i]) {
			return polygonRegion{}, fmt.Errorf("%w: invalid polygon vertex %d", ErrInvalidRegion, i)
		}
		p.vertices[i] = toVec(lons[i], lats[i])
		sum = sum.add(p.vertices[i])
	}
	if degenerate(sum) {
		return polygonRegion{}, fmt.Errorf("%w: polygon vertices have no centroid", ErrInvalidRegion)
	}
	p.ref = sum.unit().neg()
	// A second reference, slightly off the first, for points lying on the
	// centroid axis.
	n, _ := localAxes(p.ref.lonLat())
	p.alt = p.ref.add(n.scale(1e-3)).unit()
	return p, nil
}

func (p polygonRegion) contains(x vec3) bool {
	ref := p.ref
	if degenerate(x.cross(ref)) {
		ref = p.alt
	}
	crossings := 0
	for i, v := range p.vertices {
		w := p.vertices[(i+1)%len(p.vertices)]
		if arcsCross(x, ref, v, w) {
			crossings++
		}
	}
	return crossings%2 == 1
}

func (p polygonRegion) classify(c vec3, cr float64) overlap {
	d := math.Inf(1)
	for i, v := range p.vertices {
		d = math.Min(d, arcDistance(c, v, p.vertices[(i+1)%len(p.vertices)]))
	}
	return byBoundary(p.contains(c), d, cr)
}

// zoneRegion is a longitude/latitude rectangle, optionally expressed in a
// rotated frame. Its edges are two latitude arcs and two meridian arcs.
type zoneRegion struct {
	lonMin, width    float64
	latMin, latMax   float64
	fullLon          bool
	rotated          bool
	frame            [3]vec3
	meridians        [4][2]vec3
	latEdgeEndpoints [2][2]vec3
}

func newZone(lonMin, latMin, lonMax, latMax float64) (zoneRegion, error) {
	if math.IsNaN(lonMin) || math.IsNaN(lonMax) || math.IsInf(lonMin, 0) || math.IsInf(lonMax, 0) ||
		!(latMin >= -halfPi && latMax <= halfPi && latMin < latMax) {
		return zoneRegion{}, fmt.Errorf("%w: zone requires finite longitudes and -π/2 <= latMin < latMax <= π/2", ErrInvalidRegion)
	}
	z := zoneRegion{latMin: latMin, latMax: latMax}
	if lonMax-lonMin >= twoPi {
		z.fullLon = true
		z.width = twoPi
	} else {
		z.lonMin = normalizeLon(lonMin)
		z.width = normalizeLon(lonMax) - z.lonMin
		if z.width <= 0 {
			z.width += twoPi
		}
	}
	lonMaxN := z.lonMin + z.width
	latMid := (latMin + latMax) / 2
	for i, lon := range [2]float64{z.lonMin, lonMaxN} {
		z.meridians[2*i] = [2]vec3{toVec(lon, latMin), toVec(lon, latMid)}
		z.meridians[2*i+1] = [2]vec3{toVec(lon, latMid), toVec(lon, latMax)}
	}
	for i, lat := range [2]float64{latMin, latMax} {
		z.latEdgeEndpoints[i] = [2]vec3{toVec(z.lonMin, lat), toVec(lonMaxN, lat)}
	}
	return z, nil
}

// newBox returns the region |x| <= a, |y| <= b in the frame centered on
// (lon, lat) whose x axis points toward position angle pa.
func newBox(lon, lat, a, b, pa float64) (zoneRegion, error) {
	if !(a > 0 && a <= halfPi && b > 0 && b <= halfPi) || math.IsNaN(pa) {
		return zoneRegion{}, fmt.Errorf("%w: box requires 0 < a, b <= π/2, got a=%g b=%g", ErrInvalidRegion, a, b)
	}
	z, err := newZone(twoPi-a, -b, a, b)
	if err != nil {
		return zoneRegion{}, err
	}
	center := toVec(lon, lat)
	north, east := localAxes(lon, lat)
	sp, cp := math.Sincos(pa)
	major := north.scale(cp).add(east.scale(sp))
	z.rotated = true
	z.frame = [3]vec3{center, major, center.cross(major)}
	return z, nil
}

func (z zoneRegion) inLon(lon float64) bool {
	if z.fullLon {
		return true
	}
	d := lon - z.lonMin
	if d < 0 {
		d += twoPi
	}
	return d <= z.width
}

func (z zoneRegion) classify(c vec3, cr float64) overlap {
	if z.rotated {
		c = c.rotate(z.frame)
	}
	lon, lat := c.lonLat()
	in := lat >= z.latMin && lat <= z.latMax && z.inLon(lon)

	d := math.Inf(1)
	for i, edgeLat := range [2]float64{z.latMin, z.latMax} {
		if z.inLon(lon) {
			d = math.Min(d, math.Abs(lat-edgeLat))
		} else {
			ends := z.latEdgeEndpoints[i]
			d = math.Min(d, math.Min(angle(c, ends[0]), angle(c, ends[1])))
		}
	}
	if !z.fullLon {
		for _, m := range z.meridians {
			d = math.Min(d, arcDistance(c, m[0], m[1]))
		}
	}
	return byBoundary(in, d, cr)
}
