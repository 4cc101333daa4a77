// Package dither reduces truecolor images to a fixed palette.
//
// Three families of strategies share the Ditherer interface:
//
//   - NearestNeighbor maps every pixel to its closest palette color.
//   - ErrorDiffusion quantizes pixels in raster order and pushes the
//     quantization error to unvisited neighbors through a Kernel.
//   - Ordered mixes the two palette colors bracketing each pixel with a
//     positional threshold Matrix.
//
// Strategies are plain values without state; one value may dither many
// images concurrently. Every call allocates a new *image.Paletted with the
// bounds of the source and the searcher's palette.
package dither

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"picdither/palette"
	"picdither/rgb"
)

var (
	ErrEmptyImage      = errors.New("dither: image has no pixels")
	ErrInvalidKernel   = errors.New("dither: invalid kernel")
	ErrInvalidMatrix   = errors.New("dither: invalid threshold matrix")
	ErrUnknownStrategy = errors.New("dither: unknown strategy")
	errNoSearcher      = errors.New("dither: nil palette searcher")
)

// Ditherer converts src to palette indices chosen through s. src is never
// modified.
type Ditherer interface {
	Dither(src image.Image, s *palette.Searcher) (*image.Paletted, error)
}

// Apply dithers src against p with d, building the searcher from opts.
func Apply(d Ditherer, src image.Image, p color.Palette, opts ...palette.Option) (*image.Paletted, error) {
	s, err := palette.NewSearcher(p, opts...)
	if err != nil {
		return nil, err
	}
	return d.Dither(src, s)
}

func newPaletted(src image.Image, s *palette.Searcher) (*image.Paletted, error) {
	if s == nil {
		return nil, errNoSearcher
	}
	if src == nil {
		return nil, ErrEmptyImage
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, b.Dx(), b.Dy())
	}
	return image.NewPaletted(b, s.Palette()), nil
}

// readRow copies row y (absolute) of src into dst, which holds one entry
// per column.
func readRow(src image.Image, y int, dst []rgb.RGB) {
	b := src.Bounds()
	switch img := src.(type) {
	case *rgb.Image:
		pix := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := range dst {
			dst[x] = rgb.RGB{R: pix[3*x], G: pix[3*x+1], B: pix[3*x+2]}
		}
	case *image.RGBA:
		pix := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := range dst {
			dst[x] = rgb.RGB{R: pix[4*x], G: pix[4*x+1], B: pix[4*x+2]}
		}
	case *image.NRGBA:
		pix := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := range dst {
			dst[x] = rgb.RGB{R: pix[4*x], G: pix[4*x+1], B: pix[4*x+2]}
		}
	default:
		for x := range dst {
			dst[x] = rgb.From(src.At(b.Min.X+x, y))
		}
	}
}
