package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLonLats(t *testing.T) {
	rng := NewRNG(4711)

	lons, lats := rng.LonLats(100)

	require.Len(t, lons, 100)
	require.Len(t, lats, 100)
	for i := range lons {
		assert.GreaterOrEqual(t, lons[i], 0.0)
		assert.Less(t, lons[i], 2*math.Pi)
		assert.LessOrEqual(t, math.Abs(lats[i]), math.Pi/2)
	}
}

func TestAround(t *testing.T) {
	rng := NewRNG(4711)

	for range 200 {
		lon, lat := rng.Around(1, 0.5, 0.1)
		assert.Less(t, AngularDistance(1, 0.5, lon, lat), 0.1+1e-12)
	}
}

func TestDestination(t *testing.T) {
	lon, lat := Destination(0, 0, math.Pi/2, 0)
	assert.InDelta(t, math.Pi/2, lat, 1e-12)

	lon, lat = Destination(0, 0, 0.25, math.Pi/2)
	assert.InDelta(t, 0.25, lon, 1e-12)
	assert.InDelta(t, 0.0, lat, 1e-12)
}

func TestHashes(t *testing.T) {
	rng := NewRNG(4711)

	for _, h := range rng.Hashes(3, 500) {
		assert.Less(t, h, uint64(12*64))
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.Float64s(10)

	rng.Reset()
	v2 := rng.Float64s(10)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestAngularDistance(t *testing.T) {
	assert.InDelta(t, math.Pi, AngularDistance(0, 0, math.Pi, 0), 1e-12)
	assert.InDelta(t, math.Pi/2, AngularDistance(0, 0, 0, math.Pi/2), 1e-12)
	assert.InDelta(t, 0.0, AngularDistance(1, 1, 1, 1), 1e-12)
}
