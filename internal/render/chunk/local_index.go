package chunk

import "fmt"

// Region dimensions in sections. Each must be a power of two.
const (
	RegionWidth  = 8
	RegionHeight = 4
	RegionLength = 8

	RegionSize = RegionWidth * RegionHeight * RegionLength

	regionWidthShift  = 3
	regionHeightShift = 2
	regionLengthShift = 3
)

// Bit layout of a packed local index: x in the low bits, then z, then y.
const (
	localXShift = 0
	localZShift = regionWidthShift
	localYShift = regionWidthShift + regionLengthShift
)

// PackLocalIndex packs region-local section coordinates into a dense array
// index in [0, RegionSize). Out of range coordinates are a programming error.
func PackLocalIndex(x, y, z int) int {
	if x < 0 || x >= RegionWidth || y < 0 || y >= RegionHeight || z < 0 || z >= RegionLength {
		panic(fmt.Sprintf("chunk: local section coordinates (%d, %d, %d) outside region bounds", x, y, z))
	}
	return y<<localYShift | z<<localZShift | x<<localXShift
}

// UnpackLocalIndex is the inverse of PackLocalIndex.
func UnpackLocalIndex(idx int) (x, y, z int) {
	if idx < 0 || idx >= RegionSize {
		panic(fmt.Sprintf("chunk: local section index %d outside region bounds", idx))
	}
	x = (idx >> localXShift) & (RegionWidth - 1)
	y = (idx >> localYShift) & (RegionHeight - 1)
	z = (idx >> localZShift) & (RegionLength - 1)
	return x, y, z
}
