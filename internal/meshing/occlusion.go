package meshing

import (
	"sectiongraph/internal/render/visibility"
	"sectiongraph/internal/world"
)

// A section with fewer opaque blocks than a full 16x16 plane can never seal
// two faces off from each other.
const minOpaqueForOcclusion = world.SectionSize * world.SectionSize

// occlusionGrid flood-fills the transparent cells of one section to find
// which pairs of faces can see each other.
type occlusionGrid struct {
	opaque  [world.SectionVolume]bool
	visited [world.SectionVolume]bool
	queue   []int
	count   int
}

func cellIndex(x, y, z int) int {
	return y<<(2*world.SectionShift) | z<<world.SectionShift | x
}

func cellCoords(i int) (int, int, int) {
	return i & world.SectionMask, i >> (2 * world.SectionShift), (i >> world.SectionShift) & world.SectionMask
}

func newOcclusionGrid() *occlusionGrid {
	return &occlusionGrid{queue: make([]int, 0, world.SectionVolume)}
}

func (g *occlusionGrid) markOpaque(x, y, z int) {
	i := cellIndex(x, y, z)
	if !g.opaque[i] {
		g.opaque[i] = true
		g.count++
	}
}

// resolve returns the face connectivity, or nil if every pair is connected.
func (g *occlusionGrid) resolve() *visibility.Connectivity {
	if g.count < minOpaqueForOcclusion {
		return nil
	}

	var c visibility.Connectivity
	if g.count == world.SectionVolume {
		return &c
	}

	for i := range g.opaque {
		if g.opaque[i] || g.visited[i] {
			continue
		}
		faces := g.fill(i)
		for _, a := range world.AllDirections {
			if !faces.Has(a) {
				continue
			}
			for _, b := range world.AllDirections {
				if faces.Has(b) {
					c.SetVisibleThrough(a, b)
				}
			}
		}
	}
	return &c
}

// fill visits the transparent region containing start and returns the faces it touches.
func (g *occlusionGrid) fill(start int) world.DirectionSet {
	var faces world.DirectionSet
	g.queue = append(g.queue[:0], start)
	g.visited[start] = true

	for len(g.queue) > 0 {
		i := g.queue[len(g.queue)-1]
		g.queue = g.queue[:len(g.queue)-1]
		x, y, z := cellCoords(i)

		for _, d := range world.AllDirections {
			o := d.Offset()
			nx, ny, nz := x+o[0], y+o[1], z+o[2]
			if nx < 0 || nx >= world.SectionSize || ny < 0 || ny >= world.SectionSize || nz < 0 || nz >= world.SectionSize {
				faces |= d.Bit()
				continue
			}
			n := cellIndex(nx, ny, nz)
			if g.opaque[n] || g.visited[n] {
				continue
			}
			g.visited[n] = true
			g.queue = append(g.queue, n)
		}
	}
	return faces
}
