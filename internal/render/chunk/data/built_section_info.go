// Package data holds the immutable results produced by section build tasks.
package data

import (
	"slices"

	"sectiongraph/internal/render/visibility"
	"sectiongraph/internal/world"
)

// BlockEntity is a block with extra per-instance rendering attached.
type BlockEntity struct {
	Pos  world.BlockPos
	Type world.BlockType
}

// Sprite names an animated texture that must be ticked while its section is visible.
type Sprite string

// BuiltSectionInfo is the immutable output of a completed build. It is handed
// from the worker to the owning section exactly once.
type BuiltSectionInfo struct {
	Flags               Flags
	VisibilityData      visibility.Data
	GlobalBlockEntities []BlockEntity
	CulledBlockEntities []BlockEntity
	AnimatedSprites     []Sprite

	// FaceCounts records the number of exposed faces per render pass.
	FaceCounts [4]int
	// Quads holds the merged geometry per render pass.
	Quads [4][]Quad
}

// Empty is the result for a section with nothing to draw. Sight passes freely.
var Empty = &BuiltSectionInfo{
	Flags:          FlagNone,
	VisibilityData: visibility.Encode(nil),
}

// Builder accumulates build output. It is owned by a single worker.
type Builder struct {
	flags        Flags
	connectivity *visibility.Connectivity
	global       []BlockEntity
	culled       []BlockEntity
	sprites      map[Sprite]struct{}
	faces        [4]int
	quads        [4][]Quad
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{sprites: make(map[Sprite]struct{})}
}

// AddFaces records n exposed faces rendered in pass p.
func (b *Builder) AddFaces(p world.RenderPass, n int) {
	if n <= 0 || p == world.PassNone {
		return
	}
	b.faces[p] += n
	b.flags |= FlagForPass(p)
}

// AddQuad records merged geometry; its faces count towards pass p.
func (b *Builder) AddQuad(p world.RenderPass, q Quad) {
	if p == world.PassNone {
		return
	}
	b.quads[p] = append(b.quads[p], q)
	b.AddFaces(p, q.Area())
}

// AddBlockEntity records a block entity; global ones skip visibility culling.
func (b *Builder) AddBlockEntity(be BlockEntity, global bool) {
	if global {
		b.global = append(b.global, be)
	} else {
		b.culled = append(b.culled, be)
	}
	b.flags |= FlagBlockEntities
}

// AddSprite records an animated sprite used by the section.
func (b *Builder) AddSprite(s Sprite) {
	b.sprites[s] = struct{}{}
	b.flags |= FlagAnimatedSprites
}

// SetConnectivity stores the occlusion result. Nil means fully open.
func (b *Builder) SetConnectivity(c *visibility.Connectivity) {
	b.connectivity = c
}

// Build freezes the accumulated state.
func (b *Builder) Build() *BuiltSectionInfo {
	info := &BuiltSectionInfo{
		Flags:          b.flags,
		VisibilityData: visibility.Encode(b.connectivity),
		FaceCounts:     b.faces,
	}
	for p, quads := range b.quads {
		if len(quads) > 0 {
			info.Quads[p] = slices.Clone(quads)
		}
	}
	if len(b.global) > 0 {
		info.GlobalBlockEntities = slices.Clone(b.global)
	}
	if len(b.culled) > 0 {
		info.CulledBlockEntities = slices.Clone(b.culled)
	}
	if len(b.sprites) > 0 {
		info.AnimatedSprites = make([]Sprite, 0, len(b.sprites))
		for s := range b.sprites {
			info.AnimatedSprites = append(info.AnimatedSprites, s)
		}
		slices.Sort(info.AnimatedSprites)
	}
	return info
}
