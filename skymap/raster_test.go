package skymap

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hpxgo/testutil"
)

// assertUniform checks that every opaque pixel has the same color and that
// the ellipse center is opaque while the image corners are transparent.
func assertUniform(t *testing.T, img *Image) {
	t.Helper()

	w, h := img.Width(), img.Height()
	pix := img.Pix()
	require.Len(t, pix, w*h*4)

	center := pix[(h/2*w+w/2)*4:][:4]
	require.Equal(t, uint8(0xff), center[3])
	assert.Zero(t, pix[3], "top-left corner is outside the ellipse")
	assert.Zero(t, pix[len(pix)-1], "bottom-right corner is outside the ellipse")

	opaque := 0
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] == 0 {
			continue
		}
		opaque++
		require.Equal(t, center, pix[i:i+4], "pixel %d", i/4)
	}
	// The ellipse covers π/4 of the bounding box.
	assert.InDelta(t, math.Pi/4, float64(opaque)/float64(w*h), 0.02)
}

func TestRasterizeUniform(t *testing.T) {
	maps := []Skymap{
		filled(48, uint8(7)),
		filled(48, int16(-3)),
		filled(192, int32(100)),
		filled(192, int64(1<<40)),
		filled(768, float32(0.5)),
		filled(768, math.Pi),
	}

	for _, s := range maps {
		t.Run(s.Kind().String(), func(t *testing.T) {
			img, err := Rasterize(s, 64)
			require.NoError(t, err)
			assert.Equal(t, 128, img.Width())
			assert.Equal(t, 64, img.Height())
			assertUniform(t, img)

			gal, err := Rasterize(s, 64, WithGalactic(true), WithColorMap(Heat))
			require.NoError(t, err)
			assertUniform(t, gal)
		})
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	rng := testutil.NewRNG(7)
	m, err := New(rng.Float64s(12 << 8))
	require.NoError(t, err)

	base, err := Rasterize(m, 100, WithWorkers(1))
	require.NoError(t, err)

	for _, workers := range []int{2, 8, 0} {
		img, err := Rasterize(m, 100, WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, base.Pix(), img.Pix(), "workers=%d", workers)
	}
}

func TestRasterizeNaNIsTransparent(t *testing.T) {
	img, err := Rasterize(filled(48, math.NaN()), 32)
	require.NoError(t, err)

	for i := 3; i < len(img.Pix()); i += 4 {
		require.Zero(t, img.Pix()[i])
	}
}

func TestRasterizeRange(t *testing.T) {
	values := make([]float64, 12)
	for i := range values {
		values[i] = float64(i)
	}
	m, err := New(values)
	require.NoError(t, err)

	// Every value at or above the range maximum maps to white.
	img, err := Rasterize(m, 32, WithColorMap(Grayscale), WithRange(-2, -1))
	require.NoError(t, err)

	pix := img.Pix()
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] != 0 {
			require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, pix[i:i+4])
		}
	}
}

func TestRasterizeErrors(t *testing.T) {
	m := filled(12, uint8(1))

	_, err := Rasterize(m, 0)
	assert.ErrorIs(t, err, ErrInvalidWidth)

	_, err = Rasterize(nil, 8)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestImageEncodePNG(t *testing.T) {
	img, err := Rasterize(filled(12, int32(5)), 16)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, img.EncodePNG(&buf))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.RGBA().Bounds(), decoded.Bounds())
}

func TestGradient(t *testing.T) {
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, Grayscale.At(0))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, Grayscale.At(1))
	assert.Equal(t, color.RGBA{0x80, 0x80, 0x80, 0xff}, Grayscale.At(0.5))
	assert.Equal(t, Grayscale.At(0), Grayscale.At(-3))
	assert.Equal(t, Grayscale.At(1), Grayscale.At(42))
	assert.Equal(t, Grayscale.At(0), Grayscale.At(math.NaN()))

	assert.Equal(t, Viridis[0], Viridis.At(0))
	assert.Equal(t, Viridis[len(Viridis)-1], Viridis.At(1))
	assert.Equal(t, Heat[2], Heat.At(0.4))

	assert.Equal(t, color.RGBA{}, Gradient(nil).At(0.3))
}

func TestGalactic(t *testing.T) {
	const deg = math.Pi / 180

	// The galactic center.
	ra, dec := GalacticToEquatorial(0, 0)
	assert.InDelta(t, 266.40499, ra/deg, 1e-3)
	assert.InDelta(t, -28.93617, dec/deg, 1e-3)

	// The north galactic pole.
	ra, dec = GalacticToEquatorial(0, math.Pi/2)
	assert.InDelta(t, 192.85948, ra/deg, 1e-3)
	assert.InDelta(t, 27.12825, dec/deg, 1e-3)

	rng := testutil.NewRNG(3)
	for range 100 {
		lon, lat := rng.LonLat()
		l, b := EquatorialToGalactic(lon, lat)
		assert.GreaterOrEqual(t, l, 0.0)
		assert.Less(t, l, 2*math.Pi)

		gotLon, gotLat := GalacticToEquatorial(l, b)
		assert.InDelta(t, lat, gotLat, 1e-9)
		assert.InDelta(t, 0, testutil.AngularDistance(lon, lat, gotLon, gotLat), 1e-9)
	}
}
