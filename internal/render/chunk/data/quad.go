package data

import "sectiongraph/internal/world"

// Quad is a rectangle of merged block faces that share a block type and a
// facing. Pos is the local minimum block; Size spans the two in-plane axes
// following the face's normal axis in x, y, z order (for an x-facing quad:
// y then z).
type Quad struct {
	Pos   [3]uint8
	Size  [2]uint8
	Face  world.Direction
	Block world.BlockType
}

// Area returns the number of block faces the quad covers.
func (q Quad) Area() int {
	return int(q.Size[0]) * int(q.Size[1])
}
