package mangle

import (
	"fmt"
	"image"
	"log/slog"

	"picdither/dither"
	"picdither/palette"

	"github.com/disintegration/imaging"
)

func (c *CLICmd) repalette(logger *slog.Logger, img image.Image) (*image.Paletted, error) {
	pal := c.pal
	if c.adaptive > 0 {
		var err error
		if pal, err = palette.Adaptive(img, c.adaptive); err != nil {
			return nil, err
		}
	}

	logger.Info("applying palette", "colors", len(pal), "metric", c.metric)
	dest, err := dither.Apply(c.ditherer, img, pal, palette.WithMetric(c.metric))
	if err != nil {
		return nil, fmt.Errorf("could not change image palette: %w", err)
	}
	return dest, nil
}

func adjustGamma(logger *slog.Logger, img image.Image, gamma float64) image.Image {
	logger.Info("adjusting gamma", "gamma", gamma)
	return imaging.AdjustGamma(img, gamma)
}
