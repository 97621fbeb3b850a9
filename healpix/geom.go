package healpix

import "math"

type vec3 [3]float64

func toVec(lon, lat float64) vec3 {
	cl := math.Cos(lat)
	return vec3{cl * math.Cos(lon), cl * math.Sin(lon), math.Sin(lat)}
}

func (a vec3) lonLat() (lon, lat float64) {
	lon = normalizeLon(math.Atan2(a[1], a[0]))
	lat = math.Asin(clamp(a[2], -1, 1))
	return lon, lat
}

func (a vec3) dot(b vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func (a vec3) cross(b vec3) vec3 {
	return vec3{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func (a vec3) add(b vec3) vec3 { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

func (a vec3) sub(b vec3) vec3 { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func (a vec3) scale(s float64) vec3 { return vec3{a[0] * s, a[1] * s, a[2] * s} }

func (a vec3) neg() vec3 { return vec3{-a[0], -a[1], -a[2]} }

func (a vec3) norm2() float64 { return a.dot(a) }

func (a vec3) unit() vec3 { return a.scale(1 / math.Sqrt(a.norm2())) }

// rotate expresses a in the frame whose axes are the rows of m.
func (a vec3) rotate(m [3]vec3) vec3 { return vec3{m[0].dot(a), m[1].dot(a), m[2].dot(a)} }

func angle(a, b vec3) float64 { return math.Atan2(math.Sqrt(a.cross(b).norm2()), a.dot(b)) }

func degenerate(a vec3) bool { return a.norm2() < 1e-30 }

// localAxes returns the unit vectors pointing north and east at (lon, lat).
func localAxes(lon, lat float64) (north, east vec3) {
	sl, cl := math.Sincos(lat)
	so, co := math.Sincos(lon)
	return vec3{-sl * co, -sl * so, cl}, vec3{-so, co, 0}
}

// onArc reports whether x, lying on the great circle through u and v, lies
// on the minor arc between them.
func onArc(u, v, x vec3) bool {
	n := u.cross(v)
	return u.cross(x).dot(n) >= 0 && x.cross(v).dot(n) >= 0
}

// arcsCross reports whether the minor arcs a1-a2 and b1-b2 intersect.
func arcsCross(a1, a2, b1, b2 vec3) bool {
	l := a1.cross(a2).cross(b1.cross(b2))
	if degenerate(l) {
		return false
	}
	l = l.unit()
	return (onArc(a1, a2, l) && onArc(b1, b2, l)) ||
		(onArc(a1, a2, l.neg()) && onArc(b1, b2, l.neg()))
}

// arcDistance returns the angular distance from p to the minor arc u-v.
func arcDistance(p, u, v vec3) float64 {
	n := u.cross(v)
	if degenerate(n) {
		return angle(p, u)
	}
	n = n.unit()
	s := p.dot(n)
	q := p.sub(n.scale(s))
	if !degenerate(q) && onArc(u, v, q.unit()) {
		return math.Abs(math.Asin(clamp(s, -1, 1)))
	}
	return math.Min(angle(p, u), angle(p, v))
}

// boundMargin inflates cell bounding radii so that the sampled boundary
// points bound the curved cell edges.
const boundMargin = 1.02

var boundOffsets = [8][2]float64{
	{0, 0}, {1, 0}, {1, 1}, {0, 1},
	{0.5, 0}, {1, 0.5}, {0.5, 1}, {0, 0.5},
}

// cellBound returns the center of a cell and the radius of a circle
// centered there that contains the cell.
func cellBound(depth uint8, hash uint64) (vec3, float64) {
	c := toVec(Center(depth, hash))
	var r float64
	for _, o := range boundOffsets {
		r = math.Max(r, angle(c, toVec(CenterWithOffsets(depth, hash, o[0], o[1]))))
	}
	return c, r * boundMargin
}
