package palette

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"picdither/rgb"
)

// ParseHex reads a color written as #RGB, #RGBA, #RRGGBB or #RRGGBBAA. The
// leading '#' is optional.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("could not read color %q: %w", s, err)
	}

	switch len(h) {
	case 3:
		return color.NRGBA{
			R: uint8(v>>8&0xf) * 0x11,
			G: uint8(v>>4&0xf) * 0x11,
			B: uint8(v&0xf) * 0x11,
			A: 0xff,
		}, nil
	case 4:
		return color.NRGBA{
			R: uint8(v>>12&0xf) * 0x11,
			G: uint8(v>>8&0xf) * 0x11,
			B: uint8(v>>4&0xf) * 0x11,
			A: uint8(v&0xf) * 0x11,
		}, nil
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	case 8:
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
}

// FormatHex writes the opaque channels of c as #rrggbb.
func FormatHex(c color.Color) string {
	v := rgb.From(c)
	return fmt.Sprintf("#%02x%02x%02x", v.R, v.G, v.B)
}

// ReadHex reads one color per line. Blank lines and lines starting with
// ';' or "//" are skipped.
func ReadHex(r io.Reader) (color.Palette, error) {
	var p color.Palette
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, ";") || strings.HasPrefix(s, "//") {
			continue
		}
		c, err := ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p = append(p, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read hex palette: %w", err)
	}
	return p, nil
}

// WriteHex writes one rrggbb line per color, the layout used by lospec.
func WriteHex(w io.Writer, p color.Palette) error {
	bw := bufio.NewWriter(w)
	for _, c := range p {
		if _, err := bw.WriteString(FormatHex(c)[1:] + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
