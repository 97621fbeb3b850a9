package skymap

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hpxgo/dispatch"
	"github.com/hupe1980/hpxgo/healpix"
)

// ErrInvalidWidth is returned for a non-positive image width.
var ErrInvalidWidth = errors.New("skymap: image width must be positive")

// RasterOption configures Rasterize.
type RasterOption func(*rasterOptions)

type rasterOptions struct {
	cmap     ColorMap
	galactic bool
	ranged   bool
	lo, hi   float64
	workers  int
}

// WithColorMap selects the color map. The default is Viridis.
func WithColorMap(c ColorMap) RasterOption {
	return func(o *rasterOptions) {
		o.cmap = c
	}
}

// WithGalactic draws the image in galactic coordinates. The map itself is
// always indexed by equatorial position.
func WithGalactic(on bool) RasterOption {
	return func(o *rasterOptions) {
		o.galactic = on
	}
}

// WithRange fixes the values mapped to the ends of the color map. By default
// the range is the minimum and maximum of the map, ignoring NaN.
func WithRange(lo, hi float64) RasterOption {
	return func(o *rasterOptions) {
		o.ranged = true
		o.lo, o.hi = lo, hi
	}
}

// WithWorkers bounds the number of goroutines drawing rows. Values <= 0 use
// GOMAXPROCS.
func WithWorkers(n int) RasterOption {
	return func(o *rasterOptions) {
		o.workers = n
	}
}

// Image is an all-sky RGBA image.
type Image struct {
	rgba *image.RGBA
}

// RGBA returns the underlying image.
func (im *Image) RGBA() *image.RGBA { return im.rgba }

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.rgba.Rect.Dx() }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.rgba.Rect.Dy() }

// Pix returns the pixels as height*width*4 bytes, row-major RGBA.
func (im *Image) Pix() []byte { return im.rgba.Pix }

// EncodePNG writes the image as PNG.
func (im *Image) EncodePNG(w io.Writer) error { return png.Encode(w, im.rgba) }

// Rasterize draws s in the Mollweide projection into an image of width
// 2*width and height width. East is to the left. Pixels outside the
// projection ellipse and pixels whose value is NaN stay transparent.
func Rasterize(s Skymap, width int, opts ...RasterOption) (*Image, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	o := rasterOptions{cmap: Viridis}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cmap == nil {
		o.cmap = Viridis
	}

	switch m := s.(type) {
	case *Map[uint8]:
		return rasterize(m, width, o)
	case *Map[int16]:
		return rasterize(m, width, o)
	case *Map[int32]:
		return rasterize(m, width, o)
	case *Map[int64]:
		return rasterize(m, width, o)
	case *Map[float32]:
		return rasterize(m, width, o)
	case *Map[float64]:
		return rasterize(m, width, o)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownKind, s)
}

func rasterize[T Number](m *Map[T], width int, o rasterOptions) (*Image, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil map", ErrInvalidLength)
	}
	lo, hi := o.lo, o.hi
	if !o.ranged {
		lo, hi = valueRange(m.values)
	}

	height := width
	img := image.NewRGBA(image.Rect(0, 0, 2*width, height))

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	for _, r := range dispatch.Partition(height, workers) {
		g.Go(func() error {
			for y := r.Lo; y < r.Hi; y++ {
				drawRow(img, m, y, lo, hi, o)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Image{rgba: img}, nil
}

func drawRow[T Number](img *image.RGBA, m *Map[T], y int, lo, hi float64, o rasterOptions) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	span := hi - lo

	// Normalized ellipse coordinates: X, Y in (-1, 1).
	Y := 1 - (float64(y)+0.5)/float64(h)*2
	theta := math.Asin(Y)
	cosTheta := math.Cos(theta)
	sinLat := (2*theta + math.Sin(2*theta)) / math.Pi
	lat := math.Asin(math.Max(-1, math.Min(1, sinLat)))

	row := img.Pix[y*img.Stride : y*img.Stride+4*w]
	for x := range w {
		X := (float64(x)+0.5)/float64(w)*2 - 1
		if X*X+Y*Y > 1 {
			continue
		}
		lon := -math.Pi * X / cosTheta
		if lon < 0 {
			lon += 2 * math.Pi
		}
		plat := lat
		if o.galactic {
			lon, plat = GalacticToEquatorial(lon, plat)
		}

		v := float64(m.values[healpix.Hash(m.depth, lon, plat)])
		if math.IsNaN(v) {
			continue
		}
		t := 0.5
		if span > 0 {
			t = (v - lo) / span
		}
		c := o.cmap.At(t)
		px := row[4*x : 4*x+4]
		px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
	}
}

// valueRange returns the minimum and maximum of values, ignoring NaN.
func valueRange[T Number](values []T) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) {
			continue
		}
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}
