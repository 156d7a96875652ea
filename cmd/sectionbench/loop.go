package main

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"sectiongraph/internal/physics"
	"sectiongraph/internal/profiling"
	"sectiongraph/internal/render/chunk"
	"sectiongraph/internal/world"
)

const frameTime = time.Second / 60

var editBlocks = []world.BlockType{
	world.BlockTypeAir,
	world.BlockTypeStone,
	world.BlockTypeGlass,
	world.BlockTypeWater,
	world.BlockTypeChest,
	world.BlockTypeBeacon,
}

// run simulates frames while a second goroutine edits the world, the way a
// server connection would.
func (a *app) run(ctx context.Context, frames, editRate, logEvery int) error {
	g, ctx := errgroup.WithContext(ctx)
	editCtx, stopEdits := context.WithCancel(ctx)

	if editRate > 0 {
		g.Go(func() error {
			return a.editLoop(editCtx, editRate, rand.New(rand.NewSource(a.settings.World.Seed)))
		})
	}
	g.Go(func() error {
		defer stopEdits()
		return a.frameLoop(ctx, frames, logEvery)
	})
	return g.Wait()
}

func (a *app) frameLoop(ctx context.Context, frames, logEvery int) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	velocity := mgl32.Vec3{0.4, 0, 0.15}
	var visible, built int
	start := time.Now()

	for frame := 0; frame < frames; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		profiling.ResetFrame()
		a.camera.Position = a.camera.Position.Add(velocity)
		a.camera.Rotate(0.25, 0)
		pos := a.camera.Position

		a.streamer.StreamAroundAsync(pos.X(), pos.Z(), a.settings.LoadRadius())
		if frame%60 == 0 {
			a.streamer.EvictFar(pos.X(), pos.Z(), a.settings.EvictRadius())
		}

		if frame%30 == 0 {
			a.interact(frame)
		}

		a.manager.Update(chunk.View{Frame: frame, Camera: pos, Viewport: a.camera.Frustum()})
		visible += a.manager.RenderLists().SectionCount()
		built += a.manager.ProcessBuildResults()

		if logEvery > 0 && frame%logEvery == 0 {
			log.Printf("frame %d at %.1f %.1f %.1f: %s | chunk %s, %d snapshots | %s", frame, pos.X(), pos.Y(), pos.Z(),
				strings.Join(a.manager.DebugStrings(), ", "), profiling.SumWithPrefix("chunk.").Round(time.Microsecond),
				profiling.Count("world.Store.Snapshot"), profiling.TopN(4))
		}
	}

	log.Printf("sectionbench: %s frames in %s, %s section draws, %s extra results applied, %s loaded sections",
		humanize.Comma(int64(frames)), time.Since(start).Round(time.Millisecond),
		humanize.Comma(int64(visible)), humanize.Comma(int64(built)), humanize.Comma(int64(a.store.Len())))
	return nil
}

// interact breaks the block the camera looks at, or places glass on it on
// odd turns. Player edits are rebuilt ahead of everything else.
func (a *app) interact(frame int) {
	hit := physics.Raycast(a.camera.Position, a.camera.GetFrontVector(),
		physics.MinReachDistance, physics.MaxReachDistance, a.store)
	if !hit.Hit {
		return
	}
	if (frame/30)%2 == 0 {
		a.store.Set(hit.HitPosition, world.BlockTypeAir, true)
	} else {
		a.store.Set(hit.AdjacentPosition, world.BlockTypeGlass, true)
	}
}

// editLoop changes random blocks around the spawn column.
func (a *app) editLoop(ctx context.Context, rate int, rng *rand.Rand) error {
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		x := rng.Intn(64) - 32
		z := rng.Intn(64) - 32
		y := a.gen.HeightAt(x, z) + rng.Intn(3) - 1
		b := editBlocks[rng.Intn(len(editBlocks))]
		a.store.Set(world.BlockPos{X: x, Y: y, Z: z}, b, rng.Intn(8) == 0)
	}
}
