// Package palcmd implements the commands that inspect and convert palettes.
package palcmd

import (
	"fmt"
	"image/color"
	"io"

	"picdither/palette"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Show struct {
		Palette string `arg:"" help:"Built-in palette name or palette file"`
	} `cmd:"" help:"Print the colors of a palette"`
	Convert struct {
		Palette string `arg:"" help:"Built-in palette name or palette file"`
		Out     string `arg:"" help:"Destination file (.pal, .yaml, .yml, .hex, .txt)" type:"path"`
	} `cmd:"" help:"Write a palette to a file, the format follows the extension"`
	List struct{} `cmd:"" help:"List the built-in palettes"`

	pal color.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var name string
	switch kctx.Selected().Name {
	case "show":
		name = c.Show.Palette
	case "convert":
		name = c.Convert.Palette
	default:
		return nil
	}

	pal, err := palette.LoadPalette(name)
	if err != nil {
		return err
	}
	c.pal = pal
	return nil
}

func (c *CLICmd) Run(kctx *kong.Context) error {
	switch kctx.Selected().Name {
	case "show":
		return show(kctx.Stdout, c.pal)
	case "convert":
		return convert(c.pal, c.Convert.Out)
	case "list":
		return list(kctx.Stdout)
	}
	return fmt.Errorf("unsupported palette command %q", kctx.Selected().Name)
}

func show(w io.Writer, p color.Palette) error {
	for i, c := range p {
		if _, err := fmt.Fprintf(w, "%3d %s\n", i, palette.FormatHex(c)); err != nil {
			return err
		}
	}
	return nil
}

func list(w io.Writer) error {
	for _, name := range palette.Builtins() {
		p, _ := palette.Builtin(name)
		if _, err := fmt.Fprintf(w, "%-10s %3d colors\n", name, len(p)); err != nil {
			return err
		}
	}
	return nil
}
