package dither

import (
	"fmt"
	"image"
	"slices"

	"picdither/palette"
	"picdither/rgb"
)

// Entry sends Weight parts of the quantization error to the pixel at
// (x+DX, y+DY).
type Entry struct {
	DX, DY int
	Weight int
}

// Kernel describes an error diffusion filter. The error share of an entry
// is err*Weight normalized either by an arithmetic right shift of Shift
// bits or, when Shift is zero, by floor division by Divisor. Both round
// toward negative infinity.
type Kernel struct {
	Name    string
	Entries []Entry
	Divisor int
	Shift   uint
}

// maxShift keeps err*weight well inside int32.
const maxShift = 16

func (k Kernel) norm() int {
	if k.Shift > 0 {
		return 1 << k.Shift
	}
	return k.Divisor
}

// Validate checks that entries only target pixels not yet visited in
// raster order and that the weights do not add up to more than the
// normalizer.
func (k Kernel) Validate() error {
	switch {
	case len(k.Entries) == 0:
		return fmt.Errorf("%w %q: no entries", ErrInvalidKernel, k.Name)
	case k.Shift > maxShift:
		return fmt.Errorf("%w %q: shift %d out of range", ErrInvalidKernel, k.Name, k.Shift)
	case k.Shift > 0 && k.Divisor != 0:
		return fmt.Errorf("%w %q: both shift and divisor set", ErrInvalidKernel, k.Name)
	case k.Shift == 0 && k.Divisor <= 0:
		return fmt.Errorf("%w %q: divisor must be positive", ErrInvalidKernel, k.Name)
	}

	sum := 0
	for _, e := range k.Entries {
		if e.DY < 0 || (e.DY == 0 && e.DX <= 0) {
			return fmt.Errorf("%w %q: entry (%d, %d) targets a visited pixel", ErrInvalidKernel, k.Name, e.DX, e.DY)
		}
		if e.Weight < 0 {
			return fmt.Errorf("%w %q: negative weight at (%d, %d)", ErrInvalidKernel, k.Name, e.DX, e.DY)
		}
		sum += e.Weight
	}
	if sum > k.norm() {
		return fmt.Errorf("%w %q: weights add up to %d, more than %d", ErrInvalidKernel, k.Name, sum, k.norm())
	}
	return nil
}

// Clone returns a copy of k that shares no memory with it.
func (k Kernel) Clone() Kernel {
	k.Entries = slices.Clone(k.Entries)
	return k
}

// Lossless reports whether the weights distribute the whole error.
func (k Kernel) Lossless() bool {
	sum := 0
	for _, e := range k.Entries {
		sum += e.Weight
	}
	return sum == k.norm()
}

// depth is the number of rows below the current one reached by the kernel.
func (k Kernel) depth() int {
	d := 0
	for _, e := range k.Entries {
		d = max(d, e.DY)
	}
	return d
}

func (k Kernel) share(err int32, weight int) int32 {
	v := err * int32(weight)
	if k.Shift > 0 {
		return v >> k.Shift
	}
	return floorDiv(v, int32(k.Divisor))
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clamp8(v int32) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	}
	return uint8(v)
}

// ErrorDiffusion dithers in raster order, left to right and top to bottom,
// spreading each pixel's error through Kernel. Error pushed outside the
// image is dropped.
type ErrorDiffusion struct {
	Kernel Kernel
}

func (d ErrorDiffusion) Dither(src image.Image, s *palette.Searcher) (*image.Paletted, error) {
	k := d.Kernel
	if err := k.Validate(); err != nil {
		return nil, err
	}
	dst, err := newPaletted(src, s)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	// Working colors live in a ring of rows: the current row plus every
	// row the kernel reaches below it. Values may leave 0..255 while error
	// accumulates.
	ring := make([][]int32, k.depth()+1)
	for i := range ring {
		ring[i] = make([]int32, 3*w)
	}
	line := make([]rgb.RGB, w)
	load := func(y int) {
		readRow(src, b.Min.Y+y, line)
		row := ring[y%len(ring)]
		for x, c := range line {
			row[3*x], row[3*x+1], row[3*x+2] = int32(c.R), int32(c.G), int32(c.B)
		}
	}
	for y := 0; y < len(ring) && y < h; y++ {
		load(y)
	}

	for y := 0; y < h; y++ {
		row := ring[y%len(ring)]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := 0; x < w; x++ {
			c := rgb.RGB{R: clamp8(row[3*x]), G: clamp8(row[3*x+1]), B: clamp8(row[3*x+2])}
			pc, idx := s.FindNearest(c)
			out[x] = uint8(idx)

			er := int32(c.R) - int32(pc.R)
			eg := int32(c.G) - int32(pc.G)
			eb := int32(c.B) - int32(pc.B)
			if er == 0 && eg == 0 && eb == 0 {
				continue
			}

			for _, e := range k.Entries {
				tx, ty := x+e.DX, y+e.DY
				if tx < 0 || tx >= w || ty >= h {
					continue
				}
				t := ring[ty%len(ring)][3*tx : 3*tx+3 : 3*tx+3]
				t[0] += k.share(er, e.Weight)
				t[1] += k.share(eg, e.Weight)
				t[2] += k.share(eb, e.Weight)
			}
		}

		// row y is done, its slot now holds the first row not loaded yet
		if next := y + len(ring); next < h {
			load(next)
		}
	}

	return dst, nil
}
