package meshing

import (
	"sectiongraph/internal/render/chunk/data"
	"sectiongraph/internal/world"
)

const planeSize = world.SectionSize * world.SectionSize

// greedyMesher merges the exposed faces of a section into rectangles, one
// layer and one facing at a time. The mask is reused between planes.
type greedyMesher struct {
	mask [planeSize]world.BlockType
}

// normalAxis returns the axis index a face direction points along.
func normalAxis(d world.Direction) int {
	o := d.Offset()
	switch {
	case o[0] != 0:
		return 0
	case o[1] != 0:
		return 1
	default:
		return 2
	}
}

// mesh emits every quad facing d into b.
func (m *greedyMesher) mesh(snap *world.Snapshot, d world.Direction, b *data.Builder) {
	o := d.Offset()
	n := normalAxis(d)
	u, v := (n+1)%3, (n+2)%3

	var p [3]int
	for layer := range world.SectionSize {
		p[n] = layer
		if !m.fill(snap, &p, u, v, o) {
			continue
		}
		m.merge(func(i, j, h, w int, block world.BlockType) {
			p[u], p[v] = i, j
			b.AddQuad(block.Info().Pass, data.Quad{
				Pos:   [3]uint8{uint8(p[0]), uint8(p[1]), uint8(p[2])},
				Size:  [2]uint8{uint8(h), uint8(w)},
				Face:  d,
				Block: block,
			})
		})
	}
}

// fill builds the face mask of one layer and reports whether any face is set.
func (m *greedyMesher) fill(snap *world.Snapshot, p *[3]int, u, v int, o [3]int) bool {
	found := false
	for i := range world.SectionSize {
		p[u] = i
		for j := range world.SectionSize {
			p[v] = j
			cell := &m.mask[i*world.SectionSize+j]
			*cell = world.BlockTypeAir

			block := snap.Get(p[0], p[1], p[2])
			if block == world.BlockTypeAir || block.Info().Pass == world.PassNone {
				continue
			}
			if faceVisible(block, snap.Get(p[0]+o[0], p[1]+o[1], p[2]+o[2])) {
				*cell = block
				found = true
			}
		}
	}
	return found
}

// merge walks the mask row by row, growing each run of equal cells first
// along j and then along i. Consumed cells are cleared.
func (m *greedyMesher) merge(emit func(i, j, h, w int, block world.BlockType)) {
	const size = world.SectionSize
	for i := range size {
		for j := 0; j < size; {
			block := m.mask[i*size+j]
			if block == world.BlockTypeAir {
				j++
				continue
			}

			w := 1
			for j+w < size && m.mask[i*size+j+w] == block {
				w++
			}

			h := 1
		grow:
			for i+h < size {
				for k := j; k < j+w; k++ {
					if m.mask[(i+h)*size+k] != block {
						break grow
					}
				}
				h++
			}

			for a := i; a < i+h; a++ {
				for k := j; k < j+w; k++ {
					m.mask[a*size+k] = world.BlockTypeAir
				}
			}
			emit(i, j, h, w, block)
			j += w
		}
	}
}
