// Package chunk maintains the render-side graph of world sections: regions,
// per-section render state, occlusion culling and build scheduling.
package chunk

import (
	"fmt"

	"sectiongraph/internal/render/chunk/data"
	"sectiongraph/internal/render/visibility"
	"sectiongraph/internal/task"
	"sectiongraph/internal/world"
)

// RenderSection is the render state of one chunk section together with its
// place in the visibility graph. It is owned by the render thread; only the
// cancellation token is shared with build workers.
type RenderSection struct {
	// Render Region State
	region       *RenderRegion
	sectionIndex int

	// Chunk Section State
	chunkX, chunkY, chunkZ int

	// Occlusion Culling State
	adjacent           [world.DirectionCount]*RenderSection
	incomingDirections world.DirectionSet
	lastVisibleFrame   int

	// Rendering State; nil while not built. Replaced as a whole.
	info *data.BuiltSectionInfo

	// Pending Update State
	buildCancellationToken *task.CancellationToken
	pendingUpdate          UpdateType
	lastBuiltFrame         int
	lastSubmittedFrame     int

	// Lifetime state
	disposed bool
}

// NewRenderSection creates the render state for the section at chunk coordinates
// (x, y, z) inside region.
func NewRenderSection(region *RenderRegion, x, y, z int) *RenderSection {
	return &RenderSection{
		region:             region,
		sectionIndex:       PackLocalIndex(x&(RegionWidth-1), y&(RegionHeight-1), z&(RegionLength-1)),
		chunkX:             x,
		chunkY:             y,
		chunkZ:             z,
		lastVisibleFrame:   -1,
		lastBuiltFrame:     -1,
		lastSubmittedFrame: -1,
	}
}

// Adjacent returns the neighbouring section in direction d, or nil.
func (s *RenderSection) Adjacent(d world.Direction) *RenderSection {
	return s.adjacent[d]
}

// SetAdjacentNode links a neighbour. Links are maintained by the graph owner.
func (s *RenderSection) SetAdjacentNode(d world.Direction, node *RenderSection) {
	s.adjacent[d] = node
}

// Delete cancels any pending build, drops all render state and marks the
// section disposed. The section must not be used afterwards.
func (s *RenderSection) Delete() {
	if s.buildCancellationToken != nil {
		s.buildCancellationToken.Cancel()
		s.buildCancellationToken = nil
	}

	s.clearRenderState()
	s.disposed = true
}

// SetInfo replaces the render state as a unit. A nil info returns the section
// to the unbuilt state.
func (s *RenderSection) SetInfo(info *data.BuiltSectionInfo) {
	if info != nil {
		s.info = info
	} else {
		s.clearRenderState()
	}
}

func (s *RenderSection) clearRenderState() {
	s.info = nil
}

// Position returns the world section position this render refers to.
func (s *RenderSection) Position() world.SectionPos {
	return world.SectionPos{X: s.chunkX, Y: s.chunkY, Z: s.chunkZ}
}

func (s *RenderSection) ChunkX() int { return s.chunkX }
func (s *RenderSection) ChunkY() int { return s.chunkY }
func (s *RenderSection) ChunkZ() int { return s.chunkZ }

// OriginX returns the block x-coordinate of the section's minimum corner.
func (s *RenderSection) OriginX() int { return s.chunkX << world.SectionShift }
func (s *RenderSection) OriginY() int { return s.chunkY << world.SectionShift }
func (s *RenderSection) OriginZ() int { return s.chunkZ << world.SectionShift }

func (s *RenderSection) centerX() float32 { return float32(s.OriginX() + world.SectionSize/2) }
func (s *RenderSection) centerY() float32 { return float32(s.OriginY() + world.SectionSize/2) }
func (s *RenderSection) centerZ() float32 { return float32(s.OriginZ() + world.SectionSize/2) }

// SquaredDistance returns the squared distance from the section center to (x, y, z).
func (s *RenderSection) SquaredDistance(x, y, z float32) float32 {
	dx := x - s.centerX()
	dy := y - s.centerY()
	dz := z - s.centerZ()
	return dx*dx + dy*dy + dz*dz
}

// SquaredDistanceToBlock measures to the center of a block.
func (s *RenderSection) SquaredDistanceToBlock(pos world.BlockPos) float32 {
	return s.SquaredDistance(float32(pos.X)+0.5, float32(pos.Y)+0.5, float32(pos.Z)+0.5)
}

func (s *RenderSection) IsDisposed() bool {
	return s.disposed
}

func (s *RenderSection) String() string {
	return fmt.Sprintf("RenderSection at chunk (%d, %d, %d) from (%d, %d, %d) to (%d, %d, %d)",
		s.chunkX, s.chunkY, s.chunkZ,
		s.OriginX(), s.OriginY(), s.OriginZ(),
		s.OriginX()+world.SectionMask, s.OriginY()+world.SectionMask, s.OriginZ()+world.SectionMask)
}

// IsBuilt reports whether render state from a completed build is attached.
func (s *RenderSection) IsBuilt() bool {
	return s.info != nil
}

// Info returns the attached build result, or nil while unbuilt.
func (s *RenderSection) Info() *data.BuiltSectionInfo {
	return s.info
}

func (s *RenderSection) SectionIndex() int {
	return s.sectionIndex
}

func (s *RenderSection) Region() *RenderRegion {
	return s.region
}

func (s *RenderSection) SetLastVisibleFrame(frame int) {
	s.lastVisibleFrame = frame
}

func (s *RenderSection) LastVisibleFrame() int {
	return s.lastVisibleFrame
}

func (s *RenderSection) IncomingDirections() world.DirectionSet {
	return s.incomingDirections
}

func (s *RenderSection) AddIncomingDirections(dirs world.DirectionSet) {
	s.incomingDirections |= dirs
}

func (s *RenderSection) SetIncomingDirections(dirs world.DirectionSet) {
	s.incomingDirections = dirs
}

// Flags returns the render-pass bitfield of the built section.
func (s *RenderSection) Flags() data.Flags {
	if s.info == nil {
		return data.FlagNone
	}
	return s.info.Flags
}

// VisibilityData returns the occlusion encoding, visibility.Null while unbuilt.
func (s *RenderSection) VisibilityData() visibility.Data {
	if s.info == nil {
		return visibility.Null
	}
	return s.info.VisibilityData
}

// AnimatedSprites returns the animated sprites used by this section.
func (s *RenderSection) AnimatedSprites() []data.Sprite {
	if s.info == nil {
		return nil
	}
	return s.info.AnimatedSprites
}

// CulledBlockEntities returns block entities drawn only while the section is visible.
func (s *RenderSection) CulledBlockEntities() []data.BlockEntity {
	if s.info == nil {
		return nil
	}
	return s.info.CulledBlockEntities
}

// GlobalBlockEntities returns block entities drawn regardless of visibility.
func (s *RenderSection) GlobalBlockEntities() []data.BlockEntity {
	if s.info == nil {
		return nil
	}
	return s.info.GlobalBlockEntities
}

func (s *RenderSection) BuildCancellationToken() *task.CancellationToken {
	return s.buildCancellationToken
}

func (s *RenderSection) SetBuildCancellationToken(token *task.CancellationToken) {
	s.buildCancellationToken = token
}

func (s *RenderSection) PendingUpdate() UpdateType {
	return s.pendingUpdate
}

func (s *RenderSection) SetPendingUpdate(t UpdateType) {
	s.pendingUpdate = t
}

func (s *RenderSection) LastBuiltFrame() int {
	return s.lastBuiltFrame
}

func (s *RenderSection) SetLastBuiltFrame(frame int) {
	s.lastBuiltFrame = frame
}

func (s *RenderSection) LastSubmittedFrame() int {
	return s.lastSubmittedFrame
}

func (s *RenderSection) SetLastSubmittedFrame(frame int) {
	s.lastSubmittedFrame = frame
}
