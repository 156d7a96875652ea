package meshing

import (
	"errors"

	"sectiongraph/internal/render/chunk/data"
	"sectiongraph/internal/task"
	"sectiongraph/internal/world"
)

// ErrCancelled is returned when the build's token was cancelled mid-way.
var ErrCancelled = errors.New("meshing: build cancelled")

// faceVisible reports whether a face of b is exposed towards neighbour n.
func faceVisible(b, n world.BlockType) bool {
	if n.IsOpaque() {
		return false
	}
	// merged fluids and glass panes do not draw internal faces
	return n != b
}

// Build computes render state for a section snapshot. The token is polled once
// per horizontal layer and once per meshed facing; a nil token is never
// cancelled.
func Build(snap *world.Snapshot, token *task.CancellationToken) (*data.BuiltSectionInfo, error) {
	if snap == nil || snap.IsEmpty() {
		return data.Empty, nil
	}

	b := data.NewBuilder()
	grid := newOcclusionGrid()
	origin := snap.Pos.Origin()

	for y := range world.SectionSize {
		if token != nil && token.IsCancelled() {
			return nil, ErrCancelled
		}
		for z := range world.SectionSize {
			for x := range world.SectionSize {
				block := snap.Get(x, y, z)
				if block == world.BlockTypeAir {
					continue
				}
				info := block.Info()
				if info.Opaque {
					grid.markOpaque(x, y, z)
				}

				if info.Entity != world.EntityNone {
					be := data.BlockEntity{
						Pos:  world.BlockPos{X: origin.X + x, Y: origin.Y + y, Z: origin.Z + z},
						Type: block,
					}
					b.AddBlockEntity(be, info.Entity == world.EntityGlobal)
				}
				if info.Sprite != "" {
					b.AddSprite(data.Sprite(info.Sprite))
				}
			}
		}
	}

	var mesher greedyMesher
	for _, d := range world.AllDirections {
		if token != nil && token.IsCancelled() {
			return nil, ErrCancelled
		}
		mesher.mesh(snap, d, b)
	}

	if token != nil && token.IsCancelled() {
		return nil, ErrCancelled
	}
	b.SetConnectivity(grid.resolve())
	return b.Build(), nil
}
