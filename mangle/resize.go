package mangle

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// layout describes how a source rectangle lands on the resized canvas.
type layout struct {
	canvas image.Rectangle // size of the output picture
	dest   image.Rectangle // area of the canvas the picture is scaled into
	src    image.Rectangle // area of the source that is kept
	fill   bool            // canvas is larger than dest and gets a background
}

// fit computes the resize layout. A zero width or height keeps the source
// dimension. Cropping trims the source to the requested aspect ratio;
// otherwise the picture is shrunk to fit, and with fill it is centered on a
// canvas of the requested size.
func fit(srcBounds image.Rectangle, width, height int, crop, fill bool) layout {
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	destWidth := float64(width)
	if destWidth == 0 {
		destWidth = srcWidth
	}
	destHeight := float64(height)
	if destHeight == 0 {
		destHeight = srcHeight
	}

	l := layout{
		canvas: image.Rect(0, 0, int(destWidth), int(destHeight)),
		dest:   image.Rect(0, 0, int(destWidth), int(destHeight)),
		src:    srcBounds,
	}

	srcAR := srcWidth / srcHeight
	destAR := destWidth / destHeight
	switch {
	case crop && srcAR < destAR:
		dh := int(math.Round((srcHeight - srcWidth/destAR) / 2))
		l.src.Min.Y += dh
		l.src.Max.Y -= dh
	case crop && srcAR > destAR:
		dw := int(math.Round((srcWidth - srcHeight*destAR) / 2))
		l.src.Min.X += dw
		l.src.Max.X -= dw
	case crop:
	case srcAR < destAR:
		dw := destHeight * srcAR
		if !fill {
			l.canvas.Max.X = int(math.Round(dw))
			l.dest.Max.X = l.canvas.Max.X
		} else if l.fill = destWidth > dw; l.fill {
			idw := int(math.Round((destWidth - dw) / 2))
			l.dest.Min.X += idw
			l.dest.Max.X -= idw
		}
	case srcAR > destAR:
		dh := destWidth / srcAR
		if !fill {
			l.canvas.Max.Y = int(math.Round(dh))
			l.dest.Max.Y = l.canvas.Max.Y
		} else if l.fill = destHeight > dh; l.fill {
			idh := int(math.Round((destHeight - dh) / 2))
			l.dest.Min.Y += idh
			l.dest.Max.Y -= idh
		}
	}
	return l
}

// resize scales img with Catmull-Rom into an RGBA canvas, which the
// dithering strategies read without color conversion.
func resize(logger *slog.Logger, img image.Image, width, height int, crop bool, fillColor color.Color) image.Image {
	srcBounds := img.Bounds()
	l := fit(srcBounds, width, height, crop, fillColor != nil)
	if l.canvas.Size() == srcBounds.Size() && l.src == srcBounds {
		return img
	}

	logger.Info("resizing", "width", l.dest.Dx(), "height", l.dest.Dy())
	dest := image.NewRGBA(l.canvas)
	if l.fill {
		draw.Draw(dest, l.canvas, image.NewUniform(fillColor), l.canvas.Min, draw.Src)
	}
	draw.CatmullRom.Scale(dest, l.dest, img, l.src, draw.Over, nil)

	return dest
}
