package world

const snapshotSize = SectionSize + 2

// Snapshot is an immutable copy of one section plus a one block border,
// safe to read from build workers while the world keeps changing.
type Snapshot struct {
	Pos    SectionPos
	blocks [snapshotSize * snapshotSize * snapshotSize]BlockType
}

func snapshotIndex(x, y, z int) int {
	return ((y+1)*snapshotSize+(z+1))*snapshotSize + (x + 1)
}

// Get returns the block at local coordinates in [-1, 16]. Anything further out reads as air.
func (s *Snapshot) Get(x, y, z int) BlockType {
	if x < -1 || x > SectionSize || y < -1 || y > SectionSize || z < -1 || z > SectionSize {
		return BlockTypeAir
	}
	return s.blocks[snapshotIndex(x, y, z)]
}

// IsEmpty reports whether the section itself (ignoring the border) holds only air.
func (s *Snapshot) IsEmpty() bool {
	for y := 0; y < SectionSize; y++ {
		for z := 0; z < SectionSize; z++ {
			for x := 0; x < SectionSize; x++ {
				if s.blocks[snapshotIndex(x, y, z)] != BlockTypeAir {
					return false
				}
			}
		}
	}
	return true
}

// NewSnapshot builds a snapshot from a fill function over local coordinates in [-1, 16].
// Intended for tests and synthetic worlds.
func NewSnapshot(pos SectionPos, fill func(x, y, z int) BlockType) *Snapshot {
	snap := &Snapshot{Pos: pos}
	for y := -1; y <= SectionSize; y++ {
		for z := -1; z <= SectionSize; z++ {
			for x := -1; x <= SectionSize; x++ {
				snap.blocks[snapshotIndex(x, y, z)] = fill(x, y, z)
			}
		}
	}
	return snap
}
