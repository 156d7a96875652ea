package chunk

import (
	"fmt"

	"sectiongraph/internal/world"
)

// RegionKey identifies a region in region coordinates.
type RegionKey struct {
	X, Y, Z int
}

// RegionKeyFor returns the key of the region containing a section.
func RegionKeyFor(pos world.SectionPos) RegionKey {
	return RegionKey{
		X: pos.X >> regionWidthShift,
		Y: pos.Y >> regionHeightShift,
		Z: pos.Z >> regionLengthShift,
	}
}

// RenderRegion groups a fixed cuboid of sections that share GPU buffers.
// It knows nothing about adjacency or visibility.
type RenderRegion struct {
	key      RegionKey
	sections [RegionSize]*RenderSection
	count    int
	deleted  bool
}

// NewRenderRegion creates an empty region.
func NewRenderRegion(key RegionKey) *RenderRegion {
	return &RenderRegion{key: key}
}

func (r *RenderRegion) Key() RegionKey {
	return r.key
}

// Origin returns the minimum section coordinate covered by the region.
func (r *RenderRegion) Origin() world.SectionPos {
	return world.SectionPos{
		X: r.key.X << regionWidthShift,
		Y: r.key.Y << regionHeightShift,
		Z: r.key.Z << regionLengthShift,
	}
}

// AddSection stores s in its slot. The slot must be free.
func (r *RenderRegion) AddSection(s *RenderSection) {
	idx := s.SectionIndex()
	if r.sections[idx] != nil {
		panic(fmt.Sprintf("chunk: region %v slot %d already holds %v", r.key, idx, r.sections[idx]))
	}
	r.sections[idx] = s
	r.count++
}

// RemoveSection frees the slot held by s. Removing a section that is not
// stored in this region is a no-op.
func (r *RenderRegion) RemoveSection(s *RenderSection) {
	idx := s.SectionIndex()
	if r.sections[idx] != s {
		return
	}
	r.sections[idx] = nil
	r.count--
}

// GetSection returns the section stored at a packed local index, or nil.
func (r *RenderRegion) GetSection(idx int) *RenderSection {
	return r.sections[idx]
}

// SectionCount returns the number of occupied slots.
func (r *RenderRegion) SectionCount() int {
	return r.count
}

func (r *RenderRegion) IsEmpty() bool {
	return r.count == 0
}

// Delete disposes every remaining section and marks the region unusable.
func (r *RenderRegion) Delete() {
	for i, s := range r.sections {
		if s != nil {
			s.Delete()
			r.sections[i] = nil
		}
	}
	r.count = 0
	r.deleted = true
}

func (r *RenderRegion) IsDeleted() bool {
	return r.deleted
}

func (r *RenderRegion) String() string {
	return fmt.Sprintf("RenderRegion %v (%d sections)", r.key, r.count)
}
