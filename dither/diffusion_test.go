package dither

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mtb "github.com/makeworld-the-better-one/dither/v2"

	"picdither/palette"
	"picdither/rgb"
)

var bw = color.Palette{color.RGBA{0, 0, 0, 0xff}, color.RGBA{0xff, 0xff, 0xff, 0xff}}

func noise(w, h int, seed uint64) *rgb.Image {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := rgb.NewImage(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(r.UintN(256))
	}
	return img
}

// diffuseFull runs error diffusion over a buffer covering the whole image.
func diffuseFull(k Kernel, src *rgb.Image, s *palette.Searcher) []uint8 {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	buf := make([]int32, 3*w*h)
	for i, v := range src.Pix {
		buf[i] = int32(v)
	}
	out := make([]uint8, w*h)
	for y := range h {
		for x := range w {
			o := 3 * (y*w + x)
			c := rgb.RGB{R: clamp8(buf[o]), G: clamp8(buf[o+1]), B: clamp8(buf[o+2])}
			pc, idx := s.FindNearest(c)
			out[y*w+x] = uint8(idx)
			errs := [3]int32{
				int32(c.R) - int32(pc.R),
				int32(c.G) - int32(pc.G),
				int32(c.B) - int32(pc.B),
			}
			for _, e := range k.Entries {
				tx, ty := x+e.DX, y+e.DY
				if tx < 0 || tx >= w || ty >= h {
					continue
				}
				t := 3 * (ty*w + tx)
				for ch := range errs {
					buf[t+ch] += k.share(errs[ch], e.Weight)
				}
			}
		}
	}
	return out
}

func TestKernelsValid(t *testing.T) {
	for _, k := range Kernels() {
		t.Run(k.Name, func(t *testing.T) {
			require.NoError(t, k.Validate())
			assert.Equal(t, k.Name != "atkinson", k.Lossless())
		})
	}
}

func TestKernelsMatchPublishedTables(t *testing.T) {
	published := map[string]mtb.ErrorDiffusionMatrix{
		"burkes":          mtb.Burkes,
		"atkinson":        mtb.Atkinson,
		"jarvis":          mtb.JarvisJudiceNinke,
		"floyd-steinberg": mtb.FloydSteinberg,
		"stucki":          mtb.Stucki,
		"sierra3":         mtb.Sierra3,
		"sierra2":         mtb.Sierra2,
		"sierra-lite":     mtb.SierraLite,
	}

	for _, k := range Kernels() {
		t.Run(k.Name, func(t *testing.T) {
			m, ok := published[k.Name]
			require.True(t, ok)

			// the current pixel sits just left of the first weight of row 0
			cur := -1
			for i, v := range m[0] {
				if v != 0 {
					cur = i - 1
					break
				}
			}
			require.GreaterOrEqual(t, cur, 0)

			want := map[image.Point]float64{}
			for dy, row := range m {
				for i, v := range row {
					if v != 0 {
						want[image.Pt(i-cur, dy)] = float64(v)
					}
				}
			}

			got := map[image.Point]float64{}
			for _, e := range k.Entries {
				got[image.Pt(e.DX, e.DY)] = float64(e.Weight) / float64(k.norm())
			}

			require.Len(t, got, len(want))
			for p, w := range want {
				assert.InDelta(t, w, got[p], 1e-6, "offset %v", p)
			}
		})
	}
}

func TestKernelValidate(t *testing.T) {
	tests := []struct {
		name   string
		kernel Kernel
	}{
		{"no entries", Kernel{Shift: 1}},
		{"no normalizer", Kernel{Entries: []Entry{{1, 0, 1}}}},
		{"both normalizers", Kernel{Entries: []Entry{{1, 0, 1}}, Shift: 1, Divisor: 2}},
		{"negative divisor", Kernel{Entries: []Entry{{1, 0, 1}}, Divisor: -4}},
		{"shift too large", Kernel{Entries: []Entry{{1, 0, 1}}, Shift: 40}},
		{"current pixel", Kernel{Entries: []Entry{{0, 0, 1}}, Shift: 1}},
		{"left on same row", Kernel{Entries: []Entry{{-1, 0, 1}}, Shift: 1}},
		{"row above", Kernel{Entries: []Entry{{0, -1, 1}}, Shift: 1}},
		{"negative weight", Kernel{Entries: []Entry{{1, 0, -1}}, Shift: 1}},
		{"weights too heavy", Kernel{Entries: []Entry{{1, 0, 3}, {0, 1, 2}}, Divisor: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.kernel.Validate(), ErrInvalidKernel)
		})
	}
}

func TestFloorNormalization(t *testing.T) {
	shift := Kernel{Entries: []Entry{{1, 0, 1}}, Shift: 2}
	div := Kernel{Entries: []Entry{{1, 0, 1}}, Divisor: 4}

	for _, tt := range []struct{ err, want int32 }{
		{7, 1}, {4, 1}, {3, 0}, {0, 0}, {-1, -1}, {-4, -1}, {-5, -2},
	} {
		assert.Equal(t, tt.want, shift.share(tt.err, 1), "shift %d", tt.err)
		assert.Equal(t, tt.want, div.share(tt.err, 1), "divisor %d", tt.err)
	}
}

func TestErrorSpreadBounded(t *testing.T) {
	for _, k := range Kernels() {
		t.Run(k.Name, func(t *testing.T) {
			sumW := 0
			for _, e := range k.Entries {
				sumW += e.Weight
			}
			norm := int64(k.norm())
			for err := int32(-255); err <= 255; err++ {
				var spread int64
				for _, e := range k.Entries {
					spread += int64(k.share(err, e.Weight))
				}
				exact := int64(err) * int64(sumW)
				// spread <= exact/norm and spread > exact/norm - len(entries)
				assert.LessOrEqual(t, spread*norm, exact, "error %d", err)
				assert.Greater(t, spread*norm, exact-int64(len(k.Entries))*norm, "error %d", err)
			}
		})
	}
}

func TestRingMatchesFullBuffer(t *testing.T) {
	img := noise(37, 23, 7)
	pal, ok := palette.Builtin("vga16")
	require.True(t, ok)
	s, err := palette.NewSearcher(pal)
	require.NoError(t, err)

	for _, k := range Kernels() {
		t.Run(k.Name, func(t *testing.T) {
			got, err := ErrorDiffusion{Kernel: k}.Dither(img, s)
			require.NoError(t, err)
			assert.Equal(t, diffuseFull(k, img, s), got.Pix)
		})
	}
}

func TestDiffusionSourceKinds(t *testing.T) {
	img := noise(16, 9, 3)
	rgba := image.NewRGBA(image.Rect(5, -2, 21, 7))
	nrgba := image.NewNRGBA(rgba.Rect)
	for y := range 9 {
		for x := range 16 {
			c := img.RGBAt(x, y)
			rgba.SetRGBA(x+5, y-2, color.RGBA{c.R, c.G, c.B, 0xff})
			nrgba.SetNRGBA(x+5, y-2, color.NRGBA{c.R, c.G, c.B, 0xff})
		}
	}
	s, err := palette.NewSearcher(bw)
	require.NoError(t, err)

	d := ErrorDiffusion{Kernel: FloydSteinberg}
	want, err := d.Dither(img, s)
	require.NoError(t, err)

	for _, src := range []image.Image{rgba, nrgba} {
		t.Run(fmt.Sprintf("%T", src), func(t *testing.T) {
			got, err := d.Dither(src, s)
			require.NoError(t, err)
			assert.Equal(t, rgba.Rect, got.Rect)
			assert.Equal(t, want.Pix, got.Pix)
		})
	}
}

func TestBurkesGradient(t *testing.T) {
	const w, h, window = 256, 32, 8
	img := rgb.NewImage(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGB(x, y, rgb.RGB{R: uint8(x), G: uint8(x), B: uint8(x)})
		}
	}

	out, err := Apply(ErrorDiffusion{Kernel: Burkes}, img, bw)
	require.NoError(t, err)

	for x0 := window; x0+window <= w-window; x0 += window {
		var in, got int
		for y := range h {
			for x := x0; x < x0+window; x++ {
				in += x
				got += int(out.Pix[y*out.Stride+x]) * 0xff
			}
		}
		n := window * h
		assert.InDelta(t, float64(in)/float64(n), float64(got)/float64(n), 20, "window at %d", x0)
	}
}

func TestDiffusionTie(t *testing.T) {
	pal := color.Palette{color.RGBA{10, 10, 10, 0xff}, color.RGBA{30, 30, 30, 0xff}}
	img := rgb.NewImage(image.Rect(0, 0, 1, 1))
	img.SetRGB(0, 0, rgb.RGB{R: 20, G: 20, B: 20})

	out, err := Apply(ErrorDiffusion{Kernel: Burkes}, img, pal)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0}, out.Pix)
}

func TestDiffusionInvalidKernelFirst(t *testing.T) {
	s, err := palette.NewSearcher(bw)
	require.NoError(t, err)

	out, err := ErrorDiffusion{Kernel: Kernel{Name: "broken"}}.Dither(image.NewRGBA(image.Rect(0, 0, 0, 0)), s)
	assert.ErrorIs(t, err, ErrInvalidKernel)
	assert.Nil(t, out)
}

func TestDiffusionCarriesFlooredError(t *testing.T) {
	// half of the error goes one pixel right, nothing goes down
	half := Kernel{Name: "half", Entries: []Entry{{1, 0, 1}}, Divisor: 2}
	pal := color.Palette{color.Gray{Y: 0}, color.Gray{Y: 165}}

	img := rgb.NewImage(image.Rect(0, 0, 3, 3))
	for y := range 3 {
		for x, v := range []uint8{130, 100, 60} {
			img.SetRGB(x, y, rgb.RGB{R: v, G: v, B: v})
		}
	}

	out, err := Apply(ErrorDiffusion{Kernel: half}, img, pal)
	require.NoError(t, err)

	// 130 -> 165 leaves -35; floor(-35/2) = -18 makes the next pixel 82,
	// just below the midpoint 82.5 (truncating would give 83 and index 1).
	// 82 -> 0 adds 41 to 60, 101 -> 165 leaves -64 past the right edge,
	// which must not reach the next row: each row starts from 130 again.
	assert.Equal(t, []uint8{
		1, 0, 1,
		1, 0, 1,
		1, 0, 1,
	}, out.Pix)

	// with a leak of floor(-64/2) into the next row, 100 would become 68
	leaky := rgb.NewImage(image.Rect(0, 0, 3, 2))
	for x, v := range []uint8{130, 100, 60} {
		leaky.SetRGB(x, 0, rgb.RGB{R: v, G: v, B: v})
	}
	for x, v := range []uint8{100, 100, 60} {
		leaky.SetRGB(x, 1, rgb.RGB{R: v, G: v, B: v})
	}
	out, err = Apply(ErrorDiffusion{Kernel: half}, leaky, pal)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 0, 1, 1, 0, 1}, out.Pix)
}
