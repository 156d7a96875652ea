package meshing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sectiongraph/internal/render/chunk/data"
	"sectiongraph/internal/task"
	"sectiongraph/internal/world"
)

func inside(x, y, z int) bool {
	return x >= 0 && x < world.SectionSize && y >= 0 && y < world.SectionSize && z >= 0 && z < world.SectionSize
}

func snapshotOf(fill func(x, y, z int) world.BlockType) *world.Snapshot {
	return world.NewSnapshot(world.SectionPos{X: 1, Y: 2, Z: 3}, func(x, y, z int) world.BlockType {
		if !inside(x, y, z) {
			return world.BlockTypeAir
		}
		return fill(x, y, z)
	})
}

func TestBuildEmptySection(t *testing.T) {
	info, err := Build(snapshotOf(func(x, y, z int) world.BlockType { return world.BlockTypeAir }), nil)
	require.NoError(t, err)
	assert.Same(t, data.Empty, info)

	info, err = Build(nil, nil)
	require.NoError(t, err)
	assert.Same(t, data.Empty, info)
}

func TestBuildSingleBlock(t *testing.T) {
	info, err := Build(snapshotOf(func(x, y, z int) world.BlockType {
		if x == 4 && y == 4 && z == 4 {
			return world.BlockTypeStone
		}
		return world.BlockTypeAir
	}), nil)
	require.NoError(t, err)

	assert.Equal(t, 6, info.FaceCounts[world.PassSolid])
	require.Len(t, info.Quads[world.PassSolid], 6)
	for _, q := range info.Quads[world.PassSolid] {
		assert.Equal(t, [3]uint8{4, 4, 4}, q.Pos)
		assert.Equal(t, 1, q.Area())
	}
	assert.True(t, info.Flags.Has(data.FlagSolidGeometry))
	// a single block cannot separate any faces
	assert.True(t, info.VisibilityData.IsVisibleThrough(world.Up, world.Down))
	assert.True(t, info.VisibilityData.IsVisibleThrough(world.West, world.East))
}

func TestBuildSolidSectionIsClosed(t *testing.T) {
	info, err := Build(snapshotOf(func(x, y, z int) world.BlockType { return world.BlockTypeStone }), nil)
	require.NoError(t, err)

	for _, a := range world.AllDirections {
		for _, b := range world.AllDirections {
			assert.False(t, info.VisibilityData.IsVisibleThrough(a, b))
		}
	}
	// the border of the snapshot is air, so every outer face is exposed
	assert.Equal(t, 6*world.SectionSize*world.SectionSize, info.FaceCounts[world.PassSolid])
	// each outer side merges into one quad
	assert.Len(t, info.Quads[world.PassSolid], 6)
	assert.False(t, info.VisibilityData.IsNull())
}

func TestBuildFloorSeparatesUpAndDown(t *testing.T) {
	info, err := Build(snapshotOf(func(x, y, z int) world.BlockType {
		if y == 8 {
			return world.BlockTypeStone
		}
		return world.BlockTypeAir
	}), nil)
	require.NoError(t, err)

	v := info.VisibilityData
	assert.False(t, v.IsVisibleThrough(world.Up, world.Down))
	assert.True(t, v.IsVisibleThrough(world.Up, world.North))
	assert.True(t, v.IsVisibleThrough(world.Down, world.East))
	assert.True(t, v.IsVisibleThrough(world.North, world.South))
}

func TestBuildCollectsEntitiesAndSprites(t *testing.T) {
	info, err := Build(snapshotOf(func(x, y, z int) world.BlockType {
		switch {
		case x == 0 && y == 0 && z == 0:
			return world.BlockTypeChest
		case x == 1 && y == 0 && z == 0:
			return world.BlockTypeBeacon
		case y == 5:
			return world.BlockTypeWater
		}
		return world.BlockTypeAir
	}), nil)
	require.NoError(t, err)

	require.Len(t, info.CulledBlockEntities, 1)
	assert.Equal(t, world.BlockPos{X: 16, Y: 32, Z: 48}, info.CulledBlockEntities[0].Pos)
	require.Len(t, info.GlobalBlockEntities, 1)
	assert.Equal(t, world.BlockTypeBeacon, info.GlobalBlockEntities[0].Type)
	assert.Equal(t, []data.Sprite{"water_still"}, info.AnimatedSprites)
	assert.True(t, info.Flags.Has(data.FlagTranslucent|data.FlagCutoutGeometry|data.FlagBlockEntities|data.FlagAnimatedSprites))
	// water only shows its top and bottom, plus the outer rim
	assert.Equal(t, 2*256+4*16, info.FaceCounts[world.PassTranslucent])
	assert.Len(t, info.Quads[world.PassTranslucent], 6)
}

func TestBuildMergesOnlyMatchingBlocks(t *testing.T) {
	// a 4x1x2 slab on the floor, stone in x<2 and glass in x>=2
	info, err := Build(snapshotOf(func(x, y, z int) world.BlockType {
		if y != 0 || x >= 4 || z >= 2 {
			return world.BlockTypeAir
		}
		if x < 2 {
			return world.BlockTypeStone
		}
		return world.BlockTypeGlass
	}), nil)
	require.NoError(t, err)

	var up []data.Quad
	for _, quads := range info.Quads {
		for _, q := range quads {
			if q.Face == world.Up {
				up = append(up, q)
			}
		}
	}
	require.Len(t, up, 2)
	for _, q := range up {
		assert.Equal(t, 4, q.Area())
		assert.Equal(t, uint8(0), q.Pos[1])
	}
	assert.NotEqual(t, up[0].Block, up[1].Block)
}

func TestBuildHonoursCancellation(t *testing.T) {
	tok := task.NewCancellationToken()
	tok.Cancel()
	info, err := Build(snapshotOf(func(x, y, z int) world.BlockType { return world.BlockTypeStone }), tok)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Nil(t, info)
}

func BenchmarkBuildTerrainSection(b *testing.B) {
	gen := world.NewGenerator(42)
	sec := world.NewSection(world.SectionPos{X: 0, Y: 2, Z: 0})
	gen.PopulateSection(sec)
	snap := world.NewSnapshot(sec.Pos, func(x, y, z int) world.BlockType { return sec.GetBlock(x, y, z) })
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Build(snap, nil)
	}
}
