package world

import "fmt"

const (
	// SectionSize is the edge length of a section in blocks.
	SectionSize   = 16
	SectionShift  = 4
	SectionMask   = SectionSize - 1
	SectionVolume = SectionSize * SectionSize * SectionSize
)

// SectionPos addresses a 16x16x16 section of the world in section units.
type SectionPos struct {
	X, Y, Z int
}

// BlockPos addresses a single block in world space.
type BlockPos struct {
	X, Y, Z int
}

// Offset returns the neighbouring section position in the given direction.
func (p SectionPos) Offset(d Direction) SectionPos {
	o := d.Offset()
	return SectionPos{X: p.X + o[0], Y: p.Y + o[1], Z: p.Z + o[2]}
}

// Origin returns the minimum block corner of the section.
func (p SectionPos) Origin() BlockPos {
	return BlockPos{X: p.X << SectionShift, Y: p.Y << SectionShift, Z: p.Z << SectionShift}
}

func (p SectionPos) String() string {
	return fmt.Sprintf("[%d, %d, %d]", p.X, p.Y, p.Z)
}

// SectionPos returns the section containing the block.
func (b BlockPos) SectionPos() SectionPos {
	return SectionPos{X: b.X >> SectionShift, Y: b.Y >> SectionShift, Z: b.Z >> SectionShift}
}

// Local returns the block coordinates relative to its section origin.
func (b BlockPos) Local() (int, int, int) {
	return b.X & SectionMask, b.Y & SectionMask, b.Z & SectionMask
}

// SectionCoord converts a world block coordinate to a section coordinate.
func SectionCoord(v float32) int {
	return floorDiv(int(floor32(v)), SectionSize)
}

func floor32(v float32) float32 {
	i := float32(int(v))
	if v < i {
		return i - 1
	}
	return i
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
