package chunk

import (
	"sectiongraph/internal/render/chunk/data"
	"sectiongraph/internal/render/visibility"
	"sectiongraph/internal/world"
)

// graph is a hand-linked set of sections for traversal tests.
type graph map[world.SectionPos]*RenderSection

func newGraph(positions ...world.SectionPos) graph {
	g := graph{}
	regions := map[RegionKey]*RenderRegion{}
	for _, pos := range positions {
		key := RegionKeyFor(pos)
		region := regions[key]
		if region == nil {
			region = NewRenderRegion(key)
			regions[key] = region
		}
		s := NewRenderSection(region, pos.X, pos.Y, pos.Z)
		region.AddSection(s)
		g[pos] = s
	}
	for pos, s := range g {
		for _, d := range world.AllDirections {
			s.SetAdjacentNode(d, g[pos.Offset(d)])
		}
	}
	return g
}

func (g graph) setAll(info *data.BuiltSectionInfo) {
	for _, s := range g {
		s.SetInfo(info)
	}
}

func (g graph) visibleIn(frame int) []world.SectionPos {
	var out []world.SectionPos
	for pos, s := range g {
		if s.LastVisibleFrame() == frame {
			out = append(out, pos)
		}
	}
	return out
}

func box(x0, y0, z0, x1, y1, z1 int) []world.SectionPos {
	var out []world.SectionPos
	for y := y0; y <= y1; y++ {
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				out = append(out, world.SectionPos{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

func openInfo() *data.BuiltSectionInfo {
	return &data.BuiltSectionInfo{VisibilityData: visibility.Encode(nil)}
}

func connectedInfo(pairs ...[2]world.Direction) *data.BuiltSectionInfo {
	var c visibility.Connectivity
	for _, p := range pairs {
		c.SetVisibleThrough(p[0], p[1])
	}
	return &data.BuiltSectionInfo{VisibilityData: visibility.Encode(&c)}
}

type viewportFunc func(minX, minY, minZ, maxX, maxY, maxZ float32) bool

func (f viewportFunc) IsBoxVisible(minX, minY, minZ, maxX, maxY, maxZ float32) bool {
	return f(minX, minY, minZ, maxX, maxY, maxZ)
}
