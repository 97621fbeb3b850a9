package skymap

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"
)

// ColorMap maps a normalized value in [0, 1] to a color.
type ColorMap interface {
	At(t float64) color.RGBA
}

// Gradient is a color map interpolating linearly between evenly spaced
// anchors.
type Gradient []color.RGBA

// At implements ColorMap. t is clamped to [0, 1].
func (g Gradient) At(t float64) color.RGBA {
	switch len(g) {
	case 0:
		return color.RGBA{}
	case 1:
		return g[0]
	}
	if math.IsNaN(t) || t <= 0 {
		return g[0]
	}
	if t >= 1 {
		return g[len(g)-1]
	}

	pos := t * float64(len(g)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := g[i], g[i+1]
	return color.RGBA{
		R: lerp8(a.R, b.R, f),
		G: lerp8(a.G, b.G, f),
		B: lerp8(a.B, b.B, f),
		A: lerp8(a.A, b.A, f),
	}
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

var (
	// Grayscale runs from black to white.
	Grayscale = Gradient{colornames.Black, colornames.White}

	// Heat runs from black through red and yellow to white.
	Heat = Gradient{
		colornames.Black,
		colornames.Darkred,
		colornames.Red,
		colornames.Orange,
		colornames.Yellow,
		colornames.White,
	}

	// Viridis is the perceptually uniform matplotlib map.
	Viridis = Gradient{
		{0x44, 0x01, 0x54, 0xff},
		{0x48, 0x28, 0x78, 0xff},
		{0x3e, 0x49, 0x89, 0xff},
		{0x31, 0x68, 0x8e, 0xff},
		{0x26, 0x82, 0x8e, 0xff},
		{0x1f, 0x9e, 0x89, 0xff},
		{0x35, 0xb7, 0x79, 0xff},
		{0x6e, 0xce, 0x58, 0xff},
		{0xb5, 0xde, 0x2b, 0xff},
		{0xfd, 0xe7, 0x25, 0xff},
	}
)
