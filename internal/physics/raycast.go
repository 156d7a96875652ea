// Package physics answers spatial queries against loaded world blocks.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sectiongraph/internal/profiling"
	"sectiongraph/internal/world"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// BlockSource is anything that can be sampled for blocks. *world.Store implements it.
type BlockSource interface {
	Get(pos world.BlockPos) world.BlockType
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      world.BlockPos
	AdjacentPosition world.BlockPos
	Face             world.Direction // face of the hit block the ray entered through
	Distance         float32
	Hit              bool
}

// Raycast walks the blocks along a ray, one voxel boundary at a time, and
// returns the first non-air block between minDist and maxDist.
// Block (x, y, z) occupies [x, x+1) on every axis.
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, blocks BlockSource) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	if direction.Len() == 0 {
		return RaycastResult{}
	}
	dir := direction.Normalize()

	pos := [3]int{floor(start.X()), floor(start.Y()), floor(start.Z())}
	var step [3]int
	var tMax, tDelta [3]float32
	for i := range 3 {
		switch {
		case dir[i] > 0:
			step[i] = 1
			tMax[i] = (float32(pos[i]+1) - start[i]) / dir[i]
			tDelta[i] = 1 / dir[i]
		case dir[i] < 0:
			step[i] = -1
			tMax[i] = (float32(pos[i]) - start[i]) / dir[i]
			tDelta[i] = -1 / dir[i]
		default:
			tMax[i] = math.MaxFloat32
			tDelta[i] = math.MaxFloat32
		}
	}

	last := pos
	dist := float32(0)
	face := world.Direction(-1)
	for dist <= maxDist {
		if dist >= minDist {
			bp := world.BlockPos{X: pos[0], Y: pos[1], Z: pos[2]}
			if blocks.Get(bp) != world.BlockTypeAir {
				return RaycastResult{
					HitPosition:      bp,
					AdjacentPosition: world.BlockPos{X: last[0], Y: last[1], Z: last[2]},
					Face:             face,
					Distance:         dist,
					Hit:              true,
				}
			}
		}

		// Advance along the axis whose next boundary is nearest.
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		last = pos
		pos[axis] += step[axis]
		dist = tMax[axis]
		tMax[axis] += tDelta[axis]
		face = entryFace(axis, step[axis])
	}
	return RaycastResult{}
}

// entryFace returns the face a ray crosses when stepping along axis.
func entryFace(axis, step int) world.Direction {
	switch axis {
	case 0:
		if step > 0 {
			return world.West
		}
		return world.East
	case 1:
		if step > 0 {
			return world.Down
		}
		return world.Up
	default:
		if step > 0 {
			return world.North
		}
		return world.South
	}
}

func floor(v float32) int {
	return int(math.Floor(float64(v)))
}
