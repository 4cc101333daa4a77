package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("picdither"), kong.Writers(&out, &out))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return out.String(), err
	}
	err = kctx.Run()
	return out.String(), err
}

func TestStrategies(t *testing.T) {
	out, err := run(t, "strategies")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "atkinson         error diffusion, 6 neighbors", lines[0])
	assert.Contains(t, out, "nearest          no dithering\n")
	assert.Contains(t, out, "ordered4x4       ordered, 4x4 matrix\n")
}

func TestPaletteShow(t *testing.T) {
	out, err := run(t, "palette", "show", "bw")
	require.NoError(t, err)
	assert.Equal(t, "  0 #000000\n  1 #ffffff\n", out)

	_, err = run(t, "palette", "show", "no-such-palette")
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	assert.NoError(t, setupLogging("debug", true))
	assert.NoError(t, setupLogging("warn", false))
	assert.Error(t, setupLogging("loud", true))
}
