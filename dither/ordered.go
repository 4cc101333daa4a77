package dither

import (
	"fmt"
	"image"
	"slices"

	"picdither/palette"
	"picdither/parallel"
	"picdither/rgb"
)

// Matrix is a square threshold map of Size x Size values, row major.
type Matrix struct {
	Name   string
	Size   int
	Values []int
}

var (
	Bayer2x2 = Matrix{
		Name: "ordered2x2",
		Size: 2,
		Values: []int{
			0, 2,
			3, 1,
		},
	}

	Bayer4x4 = Matrix{
		Name: "ordered4x4",
		Size: 4,
		Values: []int{
			0, 8, 2, 10,
			12, 4, 14, 6,
			3, 11, 1, 9,
			15, 7, 13, 5,
		},
	}

	Bayer8x8 = Matrix{
		Name: "ordered8x8",
		Size: 8,
		Values: []int{
			0, 32, 8, 40, 2, 34, 10, 42,
			48, 16, 56, 24, 50, 18, 58, 26,
			12, 44, 4, 36, 14, 46, 6, 38,
			60, 28, 52, 20, 62, 30, 54, 22,
			3, 35, 11, 43, 1, 33, 9, 41,
			51, 19, 59, 27, 49, 17, 57, 25,
			15, 47, 7, 39, 13, 45, 5, 37,
			63, 31, 55, 23, 61, 29, 53, 21,
		},
	}
)

func (m Matrix) Validate() error {
	if m.Size <= 0 {
		return fmt.Errorf("%w %q: size %d", ErrInvalidMatrix, m.Name, m.Size)
	}
	n := m.Size * m.Size
	if len(m.Values) != n {
		return fmt.Errorf("%w %q: %d values for size %d", ErrInvalidMatrix, m.Name, len(m.Values), m.Size)
	}
	for i, v := range m.Values {
		if v < 0 || v >= n {
			return fmt.Errorf("%w %q: value %d at %d out of range", ErrInvalidMatrix, m.Name, v, i)
		}
	}
	return nil
}

// Clone returns a copy of m that shares no memory with it.
func (m Matrix) Clone() Matrix {
	m.Values = slices.Clone(m.Values)
	return m
}

// At returns the threshold for the pixel at (x, y), counted from the top
// left corner of the image.
func (m Matrix) At(x, y int) int {
	return m.Values[(y%m.Size)*m.Size+x%m.Size]
}

// Plan mixes palette entries Lo and Hi: a pixel takes Hi when Amount is
// above its threshold, so Hi covers Amount/scale of a flat area.
type Plan struct {
	Lo, Hi uint8
	Amount int
}

// MixingPlan brackets c between its nearest palette color (Lo) and the
// second nearest (Hi). Amount is the position of c projected on the
// segment Lo to Hi, scaled to scale and clamped to [0, scale-1].
func MixingPlan(s *palette.Searcher, c rgb.RGB, scale int) Plan {
	m := s.FindNearestTwo(c)
	p := Plan{Lo: uint8(m.Index), Hi: uint8(m.Second)}

	lo, hi := s.Color(m.Index), s.Color(m.Second)
	dr := int(hi.R) - int(lo.R)
	dg := int(hi.G) - int(lo.G)
	db := int(hi.B) - int(lo.B)
	den := dr*dr + dg*dg + db*db
	if den == 0 {
		return p
	}
	num := (int(c.R)-int(lo.R))*dr + (int(c.G)-int(lo.G))*dg + (int(c.B)-int(lo.B))*db
	if num <= 0 {
		return p
	}
	p.Amount = min(num*scale/den, scale-1)
	return p
}

// Ordered dithers every pixel independently with a threshold matrix.
// Scale defaults to Size*Size.
type Ordered struct {
	Matrix Matrix
	Scale  int
}

func (d Ordered) scale() int {
	if d.Scale > 0 {
		return d.Scale
	}
	return d.Matrix.Size * d.Matrix.Size
}

func (d Ordered) Dither(src image.Image, s *palette.Searcher) (*image.Paletted, error) {
	if err := d.Matrix.Validate(); err != nil {
		return nil, err
	}
	if d.Scale < 0 {
		return nil, fmt.Errorf("%w %q: negative scale %d", ErrInvalidMatrix, d.Matrix.Name, d.Scale)
	}
	dst, err := newPaletted(src, s)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	w := b.Dx()
	scale := d.scale()
	parallel.Rows(b.Dy(), func(y int) {
		line := make([]rgb.RGB, w)
		readRow(src, b.Min.Y+y, line)
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x, c := range line {
			p := MixingPlan(s, c, scale)
			if p.Amount > d.Matrix.At(x, y) {
				out[x] = p.Hi
			} else {
				out[x] = p.Lo
			}
		}
	})
	return dst, nil
}
