// Package palette holds fixed color palettes: validation, built-in tables,
// palette files and the nearest-color searcher used by the ditherers.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	stdpalette "image/color/palette"
	"slices"
	"sort"
	"strings"
)

// MaxColors is the largest palette addressable by an 8-bit index.
const MaxColors = 256

var (
	ErrEmpty    = errors.New("palette: no colors")
	ErrTooLarge = errors.New("palette: too many colors")
)

// Validate checks that p can back an 8-bit indexed image.
func Validate(p color.Palette) error {
	switch {
	case len(p) == 0:
		return ErrEmpty
	case len(p) > MaxColors:
		return fmt.Errorf("%w: %d > %d", ErrTooLarge, len(p), MaxColors)
	}
	for i, c := range p {
		if c == nil {
			return fmt.Errorf("palette: nil color at index %d", i)
		}
	}
	return nil
}

func grayRamp(n int) color.Palette {
	p := make(color.Palette, n)
	for i := range p {
		p[i] = color.RGBA{
			R: uint8(i * 255 / (n - 1)),
			G: uint8(i * 255 / (n - 1)),
			B: uint8(i * 255 / (n - 1)),
			A: 0xff,
		}
	}
	return p
}

func hexes(s ...string) color.Palette {
	p := make(color.Palette, len(s))
	for i, h := range s {
		c, err := ParseHex(h)
		if err != nil {
			panic(err)
		}
		p[i] = c
	}
	return p
}

var ega = hexes(
	"#000000", "#0000aa", "#00aa00", "#00aaaa", "#aa0000", "#aa00aa", "#aa5500", "#aaaaaa",
	"#555555", "#5555ff", "#55ff55", "#55ffff", "#ff5555", "#ff55ff", "#ffff55", "#ffffff",
)

var builtins = map[string]color.Palette{
	"bw":       hexes("#000000", "#ffffff"),
	"gray4":    grayRamp(4),
	"gray16":   grayRamp(16),
	"gray256":  grayRamp(256),
	"cga":      hexes("#000000", "#55ffff", "#ff55ff", "#ffffff"),
	"vga16":    ega,
	"spectra6": hexes("#000000", "#ffffff", "#ffff00", "#ff0000", "#0000ff", "#00ff00"),
	"web216":   stdpalette.WebSafe,
	"plan9":    stdpalette.Plan9,
}

// Builtin returns a copy of the named built-in palette.
func Builtin(name string) (color.Palette, bool) {
	p, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return slices.Clone(p), true
}

// Builtins returns the sorted names of the built-in palettes.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Gray256 returns the 256 level grayscale ramp, index i holding gray level i.
func Gray256() color.Palette {
	p, _ := Builtin("gray256")
	return p
}
