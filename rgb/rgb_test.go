package rgb

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBA(t *testing.T) {
	r, g, b, a := RGB{0x12, 0x80, 0xff}.RGBA()
	assert.Equal(t, uint32(0x1212), r)
	assert.Equal(t, uint32(0x8080), g)
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  RGB
	}{
		{"passthrough", RGB{1, 2, 3}, RGB{1, 2, 3}},
		{"rgba drops alpha", color.RGBA{10, 20, 30, 40}, RGB{10, 20, 30}},
		{"nrgba keeps straight channels", color.NRGBA{200, 200, 200, 100}, RGB{200, 200, 200}},
		{"translucent nrgba64", color.NRGBA64{0xc8c8, 0xc8c8, 0xc8c8, 0x8080}, RGB{200, 200, 200}},
		{"gray", color.Gray{Y: 0x80}, RGB{0x80, 0x80, 0x80}},
		{"white", color.White, RGB{0xff, 0xff, 0xff}},
		{"black", color.Black, RGB{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, From(tt.input))
			assert.Equal(t, tt.want, Model.Convert(tt.input))
		})
	}
}

func TestImage(t *testing.T) {
	img := NewImage(image.Rect(2, 3, 6, 5))
	require.Len(t, img.Pix, 4*2*3)
	assert.Equal(t, 12, img.Stride)

	img.SetRGB(3, 4, RGB{7, 8, 9})
	assert.Equal(t, RGB{7, 8, 9}, img.RGBAt(3, 4))
	assert.Equal(t, []uint8{7, 8, 9}, img.Pix[img.PixOffset(3, 4):img.PixOffset(3, 4)+3])

	img.Set(5, 3, color.RGBA{1, 2, 3, 0xff})
	assert.Equal(t, RGB{1, 2, 3}, img.At(5, 3))

	// outside the bounds
	img.SetRGB(0, 0, RGB{1, 1, 1})
	assert.Equal(t, RGB{}, img.RGBAt(0, 0))
}

func TestNewImageEmpty(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 0, 4))
	assert.Empty(t, img.Pix)
	assert.True(t, img.Bounds().Empty())
}
