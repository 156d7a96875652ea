package chunk

import (
	"github.com/go-gl/mathgl/mgl32"

	"sectiongraph/internal/render/visibility"
	"sectiongraph/internal/world"
)

// Viewport is the frustum predicate consulted while seeding and spreading.
type Viewport interface {
	IsBoxVisible(minX, minY, minZ, maxX, maxY, maxZ float32) bool
}

// Seed is a starting point of a traversal together with the faces sight enters it through.
type Seed struct {
	Section  *RenderSection
	Incoming world.DirectionSet
}

// CullParams controls a single traversal.
type CullParams struct {
	Camera        mgl32.Vec3
	CameraSection world.SectionPos

	// SearchDistance is the horizontal reach in blocks. Zero disables the limit.
	SearchDistance float32

	// OcclusionDisabled treats every built section as fully open.
	OcclusionDisabled bool

	// OutwardOnly stops spread back towards the camera section.
	OutwardOnly bool
}

// OcclusionCuller walks the section graph breadth-first to find the sections
// visible in a frame. The queue is reused between frames.
type OcclusionCuller struct {
	queue []*RenderSection
}

func NewOcclusionCuller() *OcclusionCuller {
	return &OcclusionCuller{queue: make([]*RenderSection, 0, 1024)}
}

// Traverse marks every reachable, visible section with frame and calls visit
// once for each of them in breadth-first order. It returns the number of
// sections visited.
func (c *OcclusionCuller) Traverse(seeds []Seed, viewport Viewport, params CullParams, frame int, visit func(*RenderSection)) int {
	queue := c.queue[:0]

	for _, seed := range seeds {
		s := seed.Section
		if s == nil || s.IsDisposed() {
			continue
		}
		if s.LastVisibleFrame() == frame {
			s.AddIncomingDirections(seed.Incoming)
			continue
		}
		s.SetLastVisibleFrame(frame)
		s.SetIncomingDirections(seed.Incoming)
		queue = append(queue, s)
	}

	for head := 0; head < len(queue); head++ {
		s := queue[head]
		if visit != nil {
			visit(s)
		}

		out := outgoingDirections(s, params)
		if out == world.NoDirections {
			continue
		}

		for _, d := range world.AllDirections {
			if !out.Has(d) {
				continue
			}
			adj := s.Adjacent(d)
			if adj == nil {
				continue
			}
			entry := d.Opposite().Bit()
			if adj.LastVisibleFrame() == frame {
				adj.AddIncomingDirections(entry)
				continue
			}
			if !isWithinDistance(adj, params) || !isInViewport(adj, viewport) {
				continue
			}
			adj.SetLastVisibleFrame(frame)
			adj.SetIncomingDirections(entry)
			queue = append(queue, adj)
		}
	}

	visited := len(queue)
	// Drop references so disposed sections can be collected.
	clear(queue)
	c.queue = queue[:0]
	return visited
}

// outgoingDirections returns the faces traversal may leave s through.
func outgoingDirections(s *RenderSection, params CullParams) world.DirectionSet {
	data := s.VisibilityData()
	if data.IsNull() {
		return world.NoDirections
	}

	var out world.DirectionSet
	if params.OcclusionDisabled {
		out = world.AllDirectionSet
	} else {
		out = visibility.Connections(data, s.IncomingDirections())
	}

	if params.OutwardOnly {
		out &= outwardDirections(s.Position(), params.CameraSection)
	}
	return out
}

// outwardDirections keeps the faces that do not point back towards origin.
func outwardDirections(pos, origin world.SectionPos) world.DirectionSet {
	var set world.DirectionSet
	if pos.Y <= origin.Y {
		set |= world.Down.Bit()
	}
	if pos.Y >= origin.Y {
		set |= world.Up.Bit()
	}
	if pos.Z <= origin.Z {
		set |= world.North.Bit()
	}
	if pos.Z >= origin.Z {
		set |= world.South.Bit()
	}
	if pos.X <= origin.X {
		set |= world.West.Bit()
	}
	if pos.X >= origin.X {
		set |= world.East.Bit()
	}
	return set
}

func isWithinDistance(s *RenderSection, params CullParams) bool {
	if params.SearchDistance <= 0 {
		return true
	}
	dx := params.Camera.X() - s.centerX()
	dz := params.Camera.Z() - s.centerZ()
	return dx*dx+dz*dz <= params.SearchDistance*params.SearchDistance
}

func isInViewport(s *RenderSection, viewport Viewport) bool {
	if viewport == nil {
		return true
	}
	x, y, z := float32(s.OriginX()), float32(s.OriginY()), float32(s.OriginZ())
	return viewport.IsBoxVisible(x, y, z, x+world.SectionSize, y+world.SectionSize, z+world.SectionSize)
}
