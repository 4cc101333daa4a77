package palette

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
)

const adaptivePrefix = "adaptive:"

// ParseAdaptive recognizes "adaptive:N" palette names. ok is false for any
// other name.
func ParseAdaptive(name string) (n int, ok bool, err error) {
	s, ok := strings.CutPrefix(strings.ToLower(name), adaptivePrefix)
	if !ok {
		return 0, false, nil
	}
	n, err = strconv.Atoi(s)
	if err != nil {
		return 0, true, fmt.Errorf("invalid adaptive palette size %q: %w", s, err)
	} else if n < 1 || n > MaxColors {
		return 0, true, fmt.Errorf("adaptive palette size out of range [1, %d]: %d", MaxColors, n)
	}
	return n, true, nil
}

// Adaptive builds a palette of at most n colors for img by median cut.
func Adaptive(img image.Image, n int) (color.Palette, error) {
	if n < 1 || n > MaxColors {
		return nil, fmt.Errorf("adaptive palette size out of range [1, %d]: %d", MaxColors, n)
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, n), img)
	if err := Validate(p); err != nil {
		return nil, fmt.Errorf("could not build adaptive palette: %w", err)
	}
	return p, nil
}
