package hpxgo_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hpxgo"
	"github.com/hupe1980/hpxgo/healpix"
	"github.com/hupe1980/hpxgo/testutil"
)

func newClient(t *testing.T, opts ...hpxgo.Option) *hpxgo.Client {
	t.Helper()
	c, err := hpxgo.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestLonLatToHealpix(t *testing.T) {
	c := newClient(t)
	rng := testutil.NewRNG(1)
	lon, lat := rng.LonLats(2000)

	hash := make([]uint64, len(lon))
	dx := make([]float64, len(lon))
	dy := make([]float64, len(lon))
	require.NoError(t, c.LonLatToHealpix(9, lon, lat, hash, dx, dy))

	for i := range lon {
		h, x, y := healpix.HashWithOffsets(9, lon[i], lat[i])
		require.Equal(t, h, hash[i])
		require.Equal(t, x, dx[i])
		require.Equal(t, y, dy[i])
	}

	// Offsets are optional.
	only := make([]uint64, len(lon))
	require.NoError(t, c.LonLatToHealpix(9, lon, lat, only, nil, nil))
	assert.Equal(t, hash, only)
}

func TestHealpixToLonLatRoundTrip(t *testing.T) {
	c := newClient(t)
	rng := testutil.NewRNG(2)
	hash := rng.Hashes(12, 3000)

	lon := make([]float64, len(hash))
	lat := make([]float64, len(hash))
	require.NoError(t, c.HealpixToLonLat(12, hash, 0.5, 0.5, lon, lat))

	back := make([]uint64, len(hash))
	require.NoError(t, c.LonLatToHealpix(12, lon, lat, back, nil, nil))
	assert.Equal(t, hash, back)
}

func TestDepthsVariants(t *testing.T) {
	c := newClient(t)
	rng := testutil.NewRNG(3)
	lon, lat := rng.LonLats(500)

	depths := make([]uint8, len(lon))
	for i := range depths {
		depths[i] = uint8(rng.Intn(healpix.MaxDepth + 1))
	}

	hash := make([]uint64, len(lon))
	require.NoError(t, c.LonLatToHealpixDepths(depths, lon, lat, hash, nil, nil))
	for i := range lon {
		require.Equal(t, healpix.Hash(depths[i], lon[i], lat[i]), hash[i])
	}

	clon := make([]float64, len(hash))
	clat := make([]float64, len(hash))
	require.NoError(t, c.HealpixToLonLatDepths(depths, hash, 0.5, 0.5, clon, clat))
	for i := range hash {
		wantLon, wantLat := healpix.Center(depths[i], hash[i])
		require.Equal(t, wantLon, clon[i])
		require.Equal(t, wantLat, clat[i])
	}
}

func TestVertices(t *testing.T) {
	c := newClient(t)
	hash := testutil.NewRNG(4).Hashes(6, 100)

	lon := make([]float64, len(hash)*4)
	lat := make([]float64, len(hash)*4)
	require.NoError(t, c.Vertices(6, hash, 1, lon, lat))
	for i, h := range hash {
		for j, v := range healpix.Vertices(6, h) {
			assert.InDelta(t, v.Lon, lon[i*4+j], 1e-12)
			assert.InDelta(t, v.Lat, lat[i*4+j], 1e-12)
		}
	}

	const step = 3
	lon = make([]float64, len(hash)*4*step)
	lat = make([]float64, len(hash)*4*step)
	require.NoError(t, c.Vertices(6, hash, step, lon, lat))

	err := c.Vertices(6, hash, 0, lon, lat)
	assert.ErrorIs(t, err, hpxgo.ErrInvalidStep)

	// n*4*step overflows int.
	err = c.Vertices(3, []uint64{5}, 1<<62, nil, nil)
	assert.ErrorIs(t, err, hpxgo.ErrInvalidStep)

	err = c.Vertices(3, []uint64{5, 6}, math.MaxInt/4, nil, nil)
	assert.ErrorIs(t, err, hpxgo.ErrInvalidStep)
}

func TestNeighbours(t *testing.T) {
	c := newClient(t)
	const depth = 5
	hash := testutil.NewRNG(5).Hashes(depth, 1000)

	out := make([]int64, len(hash)*hpxgo.NeighbourSlots)
	require.NoError(t, c.Neighbours(depth, hash, out))

	npix := int64(healpix.NPix(depth))
	for i, h := range hash {
		row := out[i*hpxgo.NeighbourSlots : (i+1)*hpxgo.NeighbourSlots]
		assert.Equal(t, int64(h), row[healpix.C])
		for _, nb := range row {
			if nb != hpxgo.NoNeighbour {
				require.GreaterOrEqual(t, nb, int64(0))
				require.Less(t, nb, npix)
			}
		}

		// A is among the neighbours of its north neighbour B.
		if north := row[healpix.N]; north != hpxgo.NoNeighbour {
			back := healpix.Neighbours(depth, uint64(north))
			assert.Contains(t, back[:], int64(h))
		}
	}
}

func TestExternalNeighbours(t *testing.T) {
	c := newClient(t)
	const depth, delta = 4, 2
	hash := testutil.NewRNG(6).Hashes(depth, 200)
	width := healpix.NumExternalEdgeCells(delta)

	edges := make([]uint64, len(hash)*width)
	corners := make([]int64, len(hash)*4)
	require.NoError(t, c.ExternalNeighbours(depth, delta, hash, edges, corners))

	want := make([]uint64, width)
	for i, h := range hash {
		wc := healpix.ExternalEdge(depth, h, delta, want)
		assert.Equal(t, want, edges[i*width:(i+1)*width])
		assert.Equal(t, wc[:], corners[i*4:(i+1)*4])
	}

	err := c.ExternalNeighbours(28, 2, hash[:0], nil, nil)
	assert.ErrorIs(t, err, hpxgo.ErrInvalidDepth)
}

func TestRingRoundTrip(t *testing.T) {
	c := newClient(t)
	hash := testutil.NewRNG(7).Hashes(11, 2000)

	ring := make([]uint64, len(hash))
	require.NoError(t, c.ToRing(11, hash, ring))
	back := make([]uint64, len(hash))
	require.NoError(t, c.FromRing(11, ring, back))
	assert.Equal(t, hash, back)
}

func TestXY(t *testing.T) {
	c := newClient(t)
	lon, lat := testutil.NewRNG(8).LonLats(1000)

	x := make([]float64, len(lon))
	y := make([]float64, len(lon))
	require.NoError(t, c.LonLatToXY(lon, lat, x, y))

	gotLon := make([]float64, len(lon))
	gotLat := make([]float64, len(lon))
	require.NoError(t, c.XYToLonLat(x, y, gotLon, gotLat))
	for i := range lon {
		assert.InDelta(t, 0, testutil.AngularDistance(lon[i], lat[i], gotLon[i], gotLat[i]), 1e-9)
	}

	// Outside the projection domain.
	out := []float64{0}
	outLat := []float64{0}
	require.NoError(t, c.XYToLonLat([]float64{0.5}, []float64{1.9}, out, outLat))
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(outLat[0]))

	hash := testutil.NewRNG(9).Hashes(3, 50)
	cx := make([]float64, len(hash))
	cy := make([]float64, len(hash))
	require.NoError(t, c.HealpixToXY(3, hash, cx, cy))
	for i, h := range hash {
		wx, wy := healpix.CenterXY(3, h)
		assert.Equal(t, wx, cx[i])
		assert.Equal(t, wy, cy[i])
	}
}

func TestBilinearInterpolation(t *testing.T) {
	c := newClient(t)
	lon, lat := testutil.NewRNG(10).LonLats(500)

	hash := make([]uint64, len(lon)*4)
	weights := make([]float64, len(lon)*4)
	require.NoError(t, c.BilinearInterpolation(7, lon, lat, hash, weights))

	for i := range lon {
		sum := 0.0
		for _, w := range weights[i*4 : (i+1)*4] {
			assert.GreaterOrEqual(t, w, 0.0)
			sum += w
		}
		assert.InDelta(t, 1, sum, 1e-9)
	}
}

func TestDeterministicAcrossWorkers(t *testing.T) {
	c := newClient(t)
	rng := testutil.NewRNG(11)
	lon, lat := rng.LonLats(5000)
	hash := rng.Hashes(10, 5000)

	type result struct {
		hash    []uint64
		dx      []float64
		nb      []int64
		vlon    []float64
		edges   []uint64
		corners []int64
		ring    []uint64
		weights []float64
	}
	run := func(workers int) result {
		var r result
		r.hash = make([]uint64, len(lon))
		r.dx = make([]float64, len(lon))
		require.NoError(t, c.LonLatToHealpix(10, lon, lat, r.hash, r.dx, nil, hpxgo.Parallel(workers)))

		r.nb = make([]int64, len(hash)*9)
		require.NoError(t, c.Neighbours(10, hash, r.nb, hpxgo.Parallel(workers)))

		r.vlon = make([]float64, len(hash)*8)
		vlat := make([]float64, len(hash)*8)
		require.NoError(t, c.Vertices(10, hash, 2, r.vlon, vlat, hpxgo.Parallel(workers)))

		r.edges = make([]uint64, len(hash)*8)
		r.corners = make([]int64, len(hash)*4)
		require.NoError(t, c.ExternalNeighbours(10, 1, hash, r.edges, r.corners, hpxgo.Parallel(workers)))

		r.ring = make([]uint64, len(hash))
		require.NoError(t, c.ToRing(10, hash, r.ring, hpxgo.Parallel(workers)))

		bh := make([]uint64, len(lon)*4)
		r.weights = make([]float64, len(lon)*4)
		require.NoError(t, c.BilinearInterpolation(10, lon, lat, bh, r.weights, hpxgo.Parallel(workers)))
		return r
	}

	base := run(1)
	for _, w := range []int{2, 8} {
		assert.Equal(t, base, run(w), "workers=%d", w)
	}
}

func TestPreconditionsWriteNothing(t *testing.T) {
	c := newClient(t)
	lon, lat := testutil.NewRNG(12).LonLats(600)

	const marker = 77
	fresh := func(n int) []uint64 {
		out := make([]uint64, n)
		for i := range out {
			out[i] = marker
		}
		return out
	}
	untouched := func(out []uint64) bool {
		for _, v := range out {
			if v != marker {
				return false
			}
		}
		return true
	}

	t.Run("depth", func(t *testing.T) {
		out := fresh(len(lon))
		err := c.LonLatToHealpix(healpix.MaxDepth+1, lon, lat, out, nil, nil)
		assert.ErrorIs(t, err, hpxgo.ErrInvalidDepth)
		var de *hpxgo.DepthError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, healpix.MaxDepth+1, de.Depth)
		assert.True(t, untouched(out))
	})

	t.Run("length", func(t *testing.T) {
		out := fresh(len(lon) - 1)
		err := c.LonLatToHealpix(5, lon, lat, out, nil, nil)
		assert.ErrorIs(t, err, hpxgo.ErrLengthMismatch)
		var le *hpxgo.LengthError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, "hash", le.Buffer)
		assert.Equal(t, len(lon)-1, le.Got)
		assert.Equal(t, len(lon), le.Want)
		assert.True(t, untouched(out))
	})

	t.Run("optional length", func(t *testing.T) {
		out := fresh(len(lon))
		err := c.LonLatToHealpix(5, lon, lat, out, make([]float64, 3), nil)
		assert.ErrorIs(t, err, hpxgo.ErrLengthMismatch)
		assert.True(t, untouched(out))
	})

	t.Run("coordinate", func(t *testing.T) {
		bad := append([]float64(nil), lat...)
		bad[400] = 2
		out := fresh(len(lon))
		err := c.LonLatToHealpix(5, lon, bad, out, nil, nil, hpxgo.Parallel(4))
		assert.ErrorIs(t, err, hpxgo.ErrInvalidCoordinate)
		var ie *hpxgo.IndexError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, 400, ie.Index)
		assert.True(t, untouched(out))
	})

	t.Run("hash", func(t *testing.T) {
		hash := []uint64{0, 1, healpix.NPix(3)}
		out := fresh(3)
		err := c.ToRing(3, hash, out)
		assert.ErrorIs(t, err, hpxgo.ErrInvalidHash)
		assert.True(t, untouched(out))
	})

	t.Run("offset", func(t *testing.T) {
		lonOut := make([]float64, 1)
		err := c.HealpixToLonLat(3, []uint64{0}, 1.5, 0.5, lonOut, make([]float64, 1))
		assert.ErrorIs(t, err, hpxgo.ErrInvalidOffset)
		assert.Zero(t, lonOut[0])
	})

	t.Run("rows", func(t *testing.T) {
		out := make([]int64, 8)
		err := c.Neighbours(3, []uint64{0}, out)
		assert.True(t, errors.Is(err, hpxgo.ErrLengthMismatch))
		assert.Equal(t, make([]int64, 8), out)
	})
}

func TestEmptyBatch(t *testing.T) {
	c := newClient(t)
	require.NoError(t, c.LonLatToHealpix(3, nil, nil, nil, nil, nil))
	require.NoError(t, c.Neighbours(3, nil, nil))
}
