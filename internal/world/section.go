package world

// Section is the block storage of one 16x16x16 world section.
// Storage is allocated lazily on the first non-air write and released
// once the section becomes empty again.
type Section struct {
	Pos      SectionPos
	blocks   []BlockType
	nonAir   int
	modCount uint64
}

// NewSection creates an empty section at pos.
func NewSection(pos SectionPos) *Section {
	return &Section{Pos: pos}
}

// indexInSection converts local coordinates to a flat index, y-major so that
// horizontal layers are contiguous.
func indexInSection(x, y, z int) int {
	return y<<(2*SectionShift) | z<<SectionShift | x
}

func inSection(x, y, z int) bool {
	return x >= 0 && x < SectionSize && y >= 0 && y < SectionSize && z >= 0 && z < SectionSize
}

// GetBlock returns the block at local coordinates. Out of range reads return air.
func (s *Section) GetBlock(x, y, z int) BlockType {
	if s.blocks == nil || !inSection(x, y, z) {
		return BlockTypeAir
	}
	return s.blocks[indexInSection(x, y, z)]
}

// SetBlock stores a block at local coordinates and reports whether anything changed.
func (s *Section) SetBlock(x, y, z int, b BlockType) bool {
	if !inSection(x, y, z) {
		return false
	}
	if s.blocks == nil {
		if b == BlockTypeAir {
			return false
		}
		s.blocks = make([]BlockType, SectionVolume)
	}

	idx := indexInSection(x, y, z)
	old := s.blocks[idx]
	if old == b {
		return false
	}
	s.blocks[idx] = b
	s.modCount++

	switch {
	case old == BlockTypeAir:
		s.nonAir++
	case b == BlockTypeAir:
		s.nonAir--
	}
	if s.nonAir == 0 {
		s.blocks = nil
	}
	return true
}

// IsEmpty reports whether the section contains only air.
func (s *Section) IsEmpty() bool {
	return s.nonAir == 0
}

// NonAirCount returns the number of non-air blocks.
func (s *Section) NonAirCount() int {
	return s.nonAir
}

// ModCount increases on every effective block change.
func (s *Section) ModCount() uint64 {
	return s.modCount
}
