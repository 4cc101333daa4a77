package main

import (
	"fmt"
	"log/slog"
	"os"

	"picdither/dither"
	"picdither/mangle"
	"picdither/palcmd"
	"picdither/parallel"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

type CLI struct {
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"PICDITHER_LOG_LEVEL"`
	NoColor  bool   `help:"Disable colored log output"`
	Workers  int    `help:"Number of files processed at once, 0 uses every CPU" default:"0" env:"PICDITHER_WORKERS"`

	Mangle     mangle.CLICmd `cmd:"" help:"Reduce pictures in a folder to a palette"`
	Palette    palcmd.CLICmd `cmd:"" help:"Inspect and convert palettes"`
	Strategies strategiesCmd `cmd:"" help:"List dithering strategies"`
}

type strategiesCmd struct{}

func (strategiesCmd) Run(kctx *kong.Context) error {
	for _, name := range dither.Names() {
		d, err := dither.ByName(name)
		if err != nil {
			return err
		}

		var kind string
		switch v := d.(type) {
		case dither.ErrorDiffusion:
			kind = fmt.Sprintf("error diffusion, %d neighbors", len(v.Kernel.Entries))
		case dither.Ordered:
			kind = fmt.Sprintf("ordered, %dx%d matrix", v.Matrix.Size, v.Matrix.Size)
		default:
			kind = "no dithering"
		}
		if _, err := fmt.Fprintf(kctx.Stdout, "%-16s %s\n", name, kind); err != nil {
			return err
		}
	}
	return nil
}

func setupLogging(level string, noColor bool) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   lvl,
		NoColor: noColor,
	})))
	return nil
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("picdither"),
		kong.Description("Reduce truecolor pictures to a fixed palette."),
		kong.UsageOnError(),
	)

	if err := setupLogging(cli.LogLevel, cli.NoColor); err != nil {
		kctx.FatalIfErrorf(err)
	}

	pool := parallel.Start(cli.Workers)
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Workers)

	err := kctx.Run(pool.Do, pool.Wait)
	pool.Wait(true)
	kctx.FatalIfErrorf(err)
}
