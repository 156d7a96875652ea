package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, Default(), s)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
render_distance: 8
workers: 3
occlusion_culling: false
world:
  generator: flat
  flat_height: 20
`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, s.RenderDistance)
	assert.Equal(t, 3, s.Workers)
	assert.False(t, s.OcclusionCulling)
	assert.True(t, s.OutwardCulling)
	assert.Equal(t, GeneratorFlat, s.World.Generator)
	assert.Equal(t, 20, s.World.FlatHeight)
	assert.Equal(t, Default().World.Seed, s.World.Seed)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "render_distanse: 8\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Load(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestValidateClamps(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below", 0, MinRenderDistance},
		{"in range", 10, 10},
		{"above", 500, MaxRenderDistance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			s.RenderDistance = tt.in
			require.NoError(t, s.Validate())
			assert.Equal(t, tt.want, s.RenderDistance)
		})
	}

	s := Default()
	s.Workers = 0
	s.QueueSize = 0
	s.BuildsPerFrame = -1
	require.NoError(t, s.Validate())
	assert.Equal(t, 1, s.Workers)
	assert.Equal(t, 1, s.QueueSize)
	assert.Equal(t, 1, s.BuildsPerFrame)
}

func TestValidateRejects(t *testing.T) {
	s := Default()
	s.MinSectionY, s.MaxSectionY = 4, 2
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	s = Default()
	s.World.Generator = "amplified"
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	s = Default()
	s.World.FlatHeight = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
}

func TestGetSet(t *testing.T) {
	orig := Get()
	t.Cleanup(func() { require.NoError(t, Set(orig)) })

	s := Default()
	s.RenderDistance = 1000
	require.NoError(t, Set(s))
	assert.Equal(t, MaxRenderDistance, Get().RenderDistance)

	bad := Default()
	bad.World.Generator = "nope"
	assert.Error(t, Set(bad))
	assert.Equal(t, MaxRenderDistance, Get().RenderDistance)
}

func TestRadii(t *testing.T) {
	s := Default()
	s.RenderDistance = 10
	assert.Equal(t, 11, s.LoadRadius())
	assert.Equal(t, 20, s.EvictRadius())
	assert.Equal(t, float32(160), s.SearchDistance())
}
