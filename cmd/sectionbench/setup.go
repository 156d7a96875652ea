package main

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"sectiongraph/internal/config"
	"sectiongraph/internal/graphics"
	"sectiongraph/internal/render/chunk"
	"sectiongraph/internal/world"
)

const (
	winW = 900
	winH = 600
)

type app struct {
	settings config.Settings
	gen      world.TerrainGenerator
	store    *world.Store
	streamer *world.Streamer
	manager  *chunk.Manager
	camera   *graphics.Camera
}

func newGenerator(s config.WorldGenSettings) world.TerrainGenerator {
	if s.Generator == config.GeneratorFlat {
		return world.NewFlatGenerator(s.FlatHeight)
	}
	return world.NewGenerator(s.Seed)
}

func setup(settings config.Settings) *app {
	gen := newGenerator(settings.World)
	store := world.NewStore()
	manager := chunk.NewManager(store, settings, chunk.WithLogger(log.Default()))
	store.AddListener(manager)

	camera := graphics.NewCamera(winW, winH)
	camera.Position = mgl32.Vec3{8, float32(gen.HeightAt(8, 8) + 2), 8}
	camera.Rotate(0, -30)

	a := &app{
		settings: settings,
		gen:      gen,
		store:    store,
		streamer: world.NewStreamer(store, gen, settings.MaxSectionY),
		manager:  manager,
		camera:   camera,
	}

	// Generate the spawn area up front so the first frames have something to show.
	a.streamer.StreamAroundSync(camera.Position.X(), camera.Position.Z(), 2)
	log.Printf("sectionbench: spawn at %v, %d sections loaded", camera.Position, store.Len())
	return a
}

func (a *app) shutdown() {
	a.streamer.Close()
	a.manager.Shutdown()
	log.Printf("sectionbench: shut down")
}
