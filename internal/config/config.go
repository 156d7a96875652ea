// Package config holds the tunables of the section graph and its build pool.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is wrapped by Validate for settings that cannot be clamped.
var ErrInvalidSettings = errors.New("config: invalid settings")

const (
	MinRenderDistance = 2
	MaxRenderDistance = 64
)

// Settings holds render configuration
type Settings struct {
	RenderDistance int `yaml:"render_distance"` // in sections

	Workers        int `yaml:"workers"`
	QueueSize      int `yaml:"queue_size"`
	BuildsPerFrame int `yaml:"builds_per_frame"`

	OcclusionCulling bool `yaml:"occlusion_culling"`
	OutwardCulling   bool `yaml:"outward_culling"`

	// Vertical extent of the world in sections, inclusive.
	MinSectionY int `yaml:"min_section_y"`
	MaxSectionY int `yaml:"max_section_y"`

	Debug bool `yaml:"debug"`

	World WorldGenSettings `yaml:"world"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		RenderDistance:   12,
		Workers:          max(runtime.NumCPU()-1, 1),
		QueueSize:        256,
		BuildsPerFrame:   32,
		OcclusionCulling: true,
		OutwardCulling:   true,
		MinSectionY:      0,
		MaxSectionY:      15,
		World:            defaultWorldGen(),
	}
}

// Load reads a YAML settings file on top of Default. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if strings.TrimSpace(path) == "" {
		return s, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate clamps numeric settings into range and rejects settings that
// cannot be repaired.
func (s *Settings) Validate() error {
	s.RenderDistance = min(max(s.RenderDistance, MinRenderDistance), MaxRenderDistance)
	s.Workers = max(s.Workers, 1)
	s.QueueSize = max(s.QueueSize, s.Workers)
	s.BuildsPerFrame = max(s.BuildsPerFrame, 1)

	if s.MinSectionY > s.MaxSectionY {
		return fmt.Errorf("%w: min_section_y %d above max_section_y %d", ErrInvalidSettings, s.MinSectionY, s.MaxSectionY)
	}
	return s.World.validate()
}

// LoadRadius returns radius for section loading, in sections
func (s Settings) LoadRadius() int {
	return s.RenderDistance + 1
}

// EvictRadius returns radius for section eviction (larger than load radius)
func (s Settings) EvictRadius() int {
	return s.RenderDistance * 2
}

// SearchDistance returns the traversal reach in blocks.
func (s Settings) SearchDistance() float32 {
	return float32(s.RenderDistance * 16)
}

var (
	mu     sync.RWMutex
	global = Default()
)

// Get returns the process-wide settings.
func Get() Settings {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Set validates s and installs it as the process-wide settings.
func Set(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	global = s
	return nil
}
