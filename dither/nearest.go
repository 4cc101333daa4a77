package dither

import (
	"image"

	"picdither/palette"
	"picdither/parallel"
	"picdither/rgb"
)

// NearestNeighbor maps every pixel to its closest palette entry without
// any dithering.
type NearestNeighbor struct{}

func (NearestNeighbor) Dither(src image.Image, s *palette.Searcher) (*image.Paletted, error) {
	dst, err := newPaletted(src, s)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	w := b.Dx()
	parallel.Rows(b.Dy(), func(y int) {
		line := make([]rgb.RGB, w)
		readRow(src, b.Min.Y+y, line)
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x, c := range line {
			_, i := s.FindNearest(c)
			out[x] = uint8(i)
		}
	})
	return dst, nil
}
