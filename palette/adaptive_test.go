package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdaptive(t *testing.T) {
	tests := []struct {
		name    string
		wantN   int
		wantOK  bool
		wantErr bool
	}{
		{"adaptive:16", 16, true, false},
		{"Adaptive:256", 256, true, false},
		{"adaptive:0", 0, true, true},
		{"adaptive:257", 0, true, true},
		{"adaptive:x", 0, true, true},
		{"vga16", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok, err := ParseAdaptive(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantN, n)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestAdaptive(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := color.RGBA{0xff, 0, 0, 0xff}
			if x >= 4 {
				c = color.RGBA{0, 0, 0xff, 0xff}
			}
			img.SetRGBA(x, y, c)
		}
	}

	p, err := Adaptive(img, 4)
	require.NoError(t, err)
	assert.NotEmpty(t, p)
	assert.LessOrEqual(t, len(p), 4)

	_, err = Adaptive(img, 0)
	assert.Error(t, err)
}
