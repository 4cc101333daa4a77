package palette

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the YAML palette layout:
//
//	name: spectra6
//	colors:
//	  - "#000000"
//	  - "#ffffff"
type Document struct {
	Name   string   `yaml:"name,omitempty"`
	Colors []string `yaml:"colors"`
}

func ReadYAML(r io.Reader) (color.Palette, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode YAML palette: %w", err)
	}

	p := make(color.Palette, len(doc.Colors))
	for i, s := range doc.Colors {
		c, err := ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		p[i] = c
	}
	return p, nil
}

func WriteYAML(w io.Writer, name string, p color.Palette) error {
	doc := Document{Name: name, Colors: make([]string, len(p))}
	for i, c := range p {
		doc.Colors[i] = FormatHex(c)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("could not encode YAML palette: %w", err)
	}
	return enc.Close()
}

// LoadPalette resolves name as a built-in palette first and as a palette
// file otherwise. The result is validated.
func LoadPalette(name string) (color.Palette, error) {
	p, ok := Builtin(name)
	if !ok {
		var err error
		if p, err = ReadFile(name); err != nil {
			return nil, err
		}
	}

	if err := Validate(p); err != nil {
		return nil, fmt.Errorf("invalid palette %q: %w", name, err)
	}
	return p, nil
}

// ReadFile reads a palette file, picking the format from the extension:
// .pal (RIFF), .yaml/.yml or .hex/.txt. All palettes of a RIFF file are
// concatenated.
func ReadFile(path string) (color.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", path, err)
	}
	defer f.Close()

	var p color.Palette
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pal":
		pals, rerr := ReadFrom(f)
		if rerr != nil {
			err = rerr
			break
		}
		for _, pal := range pals {
			p = append(p, pal...)
		}
	case ".yaml", ".yml":
		p, err = ReadYAML(f)
	case ".hex", ".txt":
		p, err = ReadHex(f)
	default:
		return nil, fmt.Errorf("unknown palette %q: not a built-in name nor a known file type", path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", path, err)
	}
	return p, nil
}

// Encode writes p to w in the format matching the extension of path.
func Encode(w io.Writer, path string, p color.Palette) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pal":
		_, err := WriteTo(w, []color.Palette{p})
		return err
	case ".yaml", ".yml":
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return WriteYAML(w, name, p)
	case ".hex", ".txt":
		return WriteHex(w, p)
	default:
		return fmt.Errorf("unsupported palette file type: %q", ext)
	}
}
