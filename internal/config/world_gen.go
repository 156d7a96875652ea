package config

import "fmt"

// Generator names accepted in WorldGenSettings.Generator.
const (
	GeneratorNoise = "noise"
	GeneratorFlat  = "flat"
)

// WorldGenSettings holds world generation configuration
type WorldGenSettings struct {
	Generator  string `yaml:"generator"`
	Seed       int64  `yaml:"seed"`
	FlatHeight int    `yaml:"flat_height"`
}

func defaultWorldGen() WorldGenSettings {
	return WorldGenSettings{
		Generator:  GeneratorNoise,
		Seed:       1337,
		FlatHeight: 64,
	}
}

func (w *WorldGenSettings) validate() error {
	switch w.Generator {
	case "":
		w.Generator = GeneratorNoise
	case GeneratorNoise, GeneratorFlat:
	default:
		return fmt.Errorf("%w: unknown generator %q", ErrInvalidSettings, w.Generator)
	}
	if w.FlatHeight < 1 {
		return fmt.Errorf("%w: flat_height %d must be positive", ErrInvalidSettings, w.FlatHeight)
	}
	return nil
}
