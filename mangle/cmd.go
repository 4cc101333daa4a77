// Package mangle implements the command that reduces a folder of pictures
// to a fixed palette.
package mangle

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"picdither/dither"
	"picdither/palette"
	"picdither/parallel"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan    string  `help:"Source folder to scan" default:"."`
	Dest    string  `help:"Destination folder for processed pictures. Relative to scan dir if not absolute. If same as scan dir, will overwrite source files." default:"mangled"`
	Resize  bool    `help:"Resize image" default:"false" group:"resize"`
	Width   int     `help:"Max width" group:"resize"`
	Height  int     `help:"Max height" group:"resize"`
	Crop    bool    `help:"Crop image to maintain requested aspect ration" default:"false" group:"resize"`
	Fill    string  `help:"If given and not cropping, will fill background with this color to maintain destination aspect ratio" group:"resize"`
	Gamma   float64 `help:"Gamma correction applied before dithering, 1 leaves the image untouched" default:"1" group:"palette"`
	Palette string  `help:"Built-in palette name, palette file (.pal, .yaml, .yml, .hex, .txt) or adaptive:N" env:"PICDITHER_PALETTE" required:"" group:"palette"`
	Dither  string  `help:"Dithering strategy, see the strategies command" env:"PICDITHER_DITHER" default:"floyd-steinberg" group:"palette"`
	Metric  string  `help:"Color distance used to match palette entries" enum:"rgb,oklab" default:"rgb" group:"palette"`
	Format  string  `help:"Output format of mangled image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`

	FillColor color.Color     `kong:"-"`
	pal       color.Palette   `kong:"-"`
	adaptive  int             `kong:"-"`
	ditherer  dither.Ditherer `kong:"-"`
	metric    palette.Metric  `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Resize {
		switch {
		case (c.Width < 0):
			return fmt.Errorf("invalid resize width: %d", c.Width)
		case (c.Height < 0):
			return fmt.Errorf("invalid resize height: %d", c.Height)
		case (c.Width == 0) && (c.Height == 0):
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if (!c.Crop) && (c.Fill != "") {
		if c.FillColor, err = palette.ParseHex(c.Fill); err != nil {
			return fmt.Errorf("invalid fill color: %w", err)
		}
	}

	if c.Gamma <= 0 {
		return fmt.Errorf("invalid gamma: %g", c.Gamma)
	}

	return c.setup()
}

// setup resolves the palette, strategy and metric names once, before any
// file is touched.
func (c *CLICmd) setup() error {
	n, ok, err := palette.ParseAdaptive(c.Palette)
	switch {
	case err != nil:
		return err
	case ok:
		c.adaptive = n
	default:
		if c.pal, err = palette.LoadPalette(c.Palette); err != nil {
			return err
		}
	}

	if c.ditherer, err = dither.ByName(c.Dither); err != nil {
		return err
	}

	if c.metric, err = palette.ParseMetric(c.Metric); err != nil {
		return err
	}
	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				logger := slog.Default().With("file", filepath.Join(c.Scan, fileName))
				if err := c.mangle(logger, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not mangle image", "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) mangle(logger *slog.Logger, fileName string) error {
	img, imgType, err := decode(filepath.Join(c.Scan, fileName))
	if err != nil {
		return err
	}

	if c.Resize {
		img = resize(logger, img, c.Width, c.Height, c.Crop, c.FillColor)
	}

	if c.Gamma != 1 {
		img = adjustGamma(logger, img, c.Gamma)
	}

	out, err := c.repalette(logger.With("palette", c.Palette, "dither", c.Dither), img)
	if err != nil {
		return err
	}

	return save(out, imgType, c.Format, c.Dest, fileName)
}

func decode(filePath string) (image.Image, string, error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image: %w", err)
	}
	defer imgFile.Close()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %w", err)
	}
	return img, imgType, nil
}
