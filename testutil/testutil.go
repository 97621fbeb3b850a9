package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64n returns a pseudo-random number in [0,n).
func (r *RNG) Uint64n(n uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uint64n(n)
}

func (r *RNG) uint64n(n uint64) uint64 {
	if n <= math.MaxInt64 {
		return uint64(r.rand.Int63n(int64(n)))
	}
	for {
		if v := r.rand.Uint64(); v < n {
			return v
		}
	}
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Range returns a pseudo-random number in [minVal, maxVal).
func (r *RNG) Range(minVal, maxVal float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return minVal + r.rand.Float64()*(maxVal-minVal)
}

// LonLat returns a position uniformly distributed on the sphere, in radians.
func (r *RNG) LonLat() (lon, lat float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lonLat()
}

func (r *RNG) lonLat() (lon, lat float64) {
	lon = r.rand.Float64() * 2 * math.Pi
	lat = math.Asin(2*r.rand.Float64() - 1)
	return lon, lat
}

// LonLats returns n positions uniformly distributed on the sphere.
// Locks only once per call (preferred over calling LonLat in a loop).
func (r *RNG) LonLats(n int) (lons, lats []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lons = make([]float64, n)
	lats = make([]float64, n)
	for i := range n {
		lons[i], lats[i] = r.lonLat()
	}
	return lons, lats
}

// Around returns a position at angular distance below radius from
// (lon0, lat0), uniform in distance and bearing.
func (r *RNG) Around(lon0, lat0, radius float64) (lon, lat float64) {
	r.mu.Lock()
	d := r.rand.Float64() * radius
	bearing := r.rand.Float64() * 2 * math.Pi
	r.mu.Unlock()
	return Destination(lon0, lat0, d, bearing)
}

// Destination returns the position reached from (lon0, lat0) by travelling
// an angular distance d along the initial bearing (from north through east).
func Destination(lon0, lat0, d, bearing float64) (lon, lat float64) {
	sd, cd := math.Sincos(d)
	sl, cl := math.Sincos(lat0)
	lat = math.Asin(sl*cd + cl*sd*math.Cos(bearing))
	lon = lon0 + math.Atan2(math.Sin(bearing)*sd*cl, cd-sl*math.Sin(lat))
	lon = math.Mod(lon, 2*math.Pi)
	if lon < 0 {
		lon += 2 * math.Pi
	}
	return lon, lat
}

// Hashes returns n random cell indices valid at depth.
func (r *RNG) Hashes(depth uint8, n int) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	npix := uint64(12) << (2 * uint(depth))
	out := make([]uint64, n)
	for i := range out {
		out[i] = r.uint64n(npix)
	}
	return out
}

// Float64s returns n values in [0, 1).
func (r *RNG) Float64s(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, n)
	for i := range out {
		out[i] = r.rand.Float64()
	}
	return out
}

// Ints returns n values in [0, maxVal).
func (r *RNG) Ints(n int, maxVal int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Intn(maxVal)
	}
	return out
}

// AngularDistance returns the great-circle distance between two positions.
func AngularDistance(lon1, lat1, lon2, lat2 float64) float64 {
	s1, c1 := math.Sincos(lat1)
	s2, c2 := math.Sincos(lat2)
	dl := lon2 - lon1
	x := s1*s2 + c1*c2*math.Cos(dl)
	y := math.Hypot(c2*math.Sin(dl), c1*s2-s1*c2*math.Cos(dl))
	return math.Atan2(y, x)
}
