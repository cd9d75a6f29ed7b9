// Package palette provides the embedded color palettes and paper tones the sketches pick from.
package palette

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

//go:embed palettes.toml
var embedded []byte

const (
	SOURCE_CHROMOTOME = "chromotome"
	SOURCE_RISO       = "riso"
	SOURCE_NICE       = "nice"
)

// Palette is a named list of hex colors. Background is optional and unused by the shader cube, which draws its
// background from the paper tones instead.
type Palette struct {
	Name       string   `toml:"name"`
	Source     string   `toml:"source"`
	Hex        []string `toml:"colors"`
	Background string   `toml:"background,omitempty"`
}

// Library is the parsed content of a palette file.
type Library struct {
	Paper    []string  `toml:"paper"`
	Palettes []Palette `toml:"palette"`
}

// Load parses the embedded palette file.
func Load() (*Library, error) {
	return Parse(embedded)
}

// Parse decodes and validates a palette file. Unknown keys and malformed colors are errors.
func Parse(data []byte) (*Library, error) {
	lib := &Library{}
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(lib); err != nil {
		return nil, fmt.Errorf("decoding palettes: %w", err)
	}
	if len(lib.Paper) == 0 {
		return nil, fmt.Errorf("palette file has no paper colors")
	}
	if _, err := parseAll(lib.Paper); err != nil {
		return nil, fmt.Errorf("paper colors: %w", err)
	}
	for _, p := range lib.Palettes {
		if len(p.Hex) == 0 {
			return nil, fmt.Errorf("palette '%s' has no colors", p.Name)
		}
		if _, err := p.Colors(); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// FromSource returns the palettes of one source, e.g. SOURCE_CHROMOTOME. An empty source returns all palettes.
func (l *Library) FromSource(source string) []Palette {
	if source == "" {
		return l.Palettes
	}
	var out []Palette
	for _, p := range l.Palettes {
		if p.Source == source {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the palette called name.
func (l *Library) Find(name string) (Palette, error) {
	for _, p := range l.Palettes {
		if p.Name == name {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("palette '%s' not found", name)
}

func (l *Library) PaperColors() []colorful.Color {
	// validated by Parse
	cs, _ := parseAll(l.Paper)
	return cs
}

func (p Palette) Colors() ([]colorful.Color, error) {
	cs, err := parseAll(p.Hex)
	if err != nil {
		return nil, fmt.Errorf("palette '%s': %w", p.Name, err)
	}
	return cs, nil
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	return c, nil
}

func parseAll(hex []string) ([]colorful.Color, error) {
	cs := make([]colorful.Color, len(hex))
	for i, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return cs, nil
}
