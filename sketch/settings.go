package sketch

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	CONTEXT_VULKAN   = "vulkan"
	CONTEXT_SOFTWARE = "software"
)

type Attributes struct {
	Antialias bool `toml:"antialias"`
}

// Settings configure the harness and the sketch. Keys missing from a settings file keep their defaults.
type Settings struct {
	Animate       bool       `toml:"animate"`
	Context       string     `toml:"context"`
	Dimensions    [2]int     `toml:"dimensions"`
	Attributes    Attributes `toml:"attributes"`
	Seed          uint64     `toml:"seed"`
	Fps           int        `toml:"fps"`
	ShaderDir     string     `toml:"shader_dir"`
	ExportDir     string     `toml:"export_dir"`
	MaxMeshes     int        `toml:"max_meshes"`
	Stl           string     `toml:"stl"`
	PaletteSource string     `toml:"palette_source"`
	Validation    bool       `toml:"validation"`
}

func DefaultSettings() Settings {
	return Settings{
		Animate:       false,
		Context:       CONTEXT_VULKAN,
		Dimensions:    [2]int{2048, 2048},
		Attributes:    Attributes{Antialias: true},
		Fps:           60,
		ShaderDir:     "shaders_spv",
		ExportDir:     ".",
		MaxMeshes:     1000,
		PaletteSource: "chromotome",
	}
}

// LoadSettings reads a TOML settings file. An empty path yields the defaults.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	s, err := ParseSettings(b)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Dimensions[0] <= 0 || s.Dimensions[1] <= 0 {
		return fmt.Errorf("dimensions must be positive, got %dx%d", s.Dimensions[0], s.Dimensions[1])
	}
	switch s.Context {
	case CONTEXT_VULKAN, CONTEXT_SOFTWARE:
	default:
		return fmt.Errorf("unknown context '%s'", s.Context)
	}
	if s.MaxMeshes <= 0 {
		return fmt.Errorf("max_meshes must be positive, got %d", s.MaxMeshes)
	}
	if s.Fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", s.Fps)
	}
	return nil
}

// Aspect returns width / height of the configured dimensions.
func (s Settings) Aspect() float32 {
	return float32(s.Dimensions[0]) / float32(s.Dimensions[1])
}
