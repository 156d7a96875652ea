package world

import "math"

// TerrainGenerator fills freshly loaded sections with blocks.
type TerrainGenerator interface {
	HeightAt(worldX, worldZ int) int
	PopulateSection(s *Section)
}

// Generator produces rolling hills with carved caves, water below sea level
// and the occasional chest.
type Generator struct {
	seed        int64
	scale       float64
	baseHeight  int
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
	seaLevel    int
	caveScale   float64
	caveCutoff  float64
}

// NewGenerator creates a new generator with default settings.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		scale:       1.0 / 64.0,
		baseHeight:  48,
		amp:         40,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
		seaLevel:    40,
		caveScale:   1.0 / 24.0,
		caveCutoff:  0.72,
	}
}

// HeightAt computes the surface height (block Y) at world X,Z.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	n := octaveNoise(float64(worldX)*g.scale, 0, float64(worldZ)*g.scale, g.seed, g.octaves, g.persistence, g.lacunarity)
	h := float64(g.baseHeight) + (n-0.5)*2*g.amp
	if h < 0 {
		h = 0
	}
	return int(math.Floor(h))
}

func (g *Generator) isCave(x, y, z int) bool {
	if y <= 1 {
		return false
	}
	n := octaveNoise(float64(x)*g.caveScale, float64(y)*g.caveScale, float64(z)*g.caveScale, g.seed^0x5DEECE66D, 2, 0.5, 2.0)
	return n > g.caveCutoff
}

func (g *Generator) hasChest(x, z int) bool {
	return mix64(uint64(x)*31+uint64(z)*17+uint64(g.seed))%997 == 0
}

// PopulateSection fills a section from the heightmap.
func (g *Generator) PopulateSection(s *Section) {
	origin := s.Pos.Origin()
	for lx := range SectionSize {
		for lz := range SectionSize {
			wx, wz := origin.X+lx, origin.Z+lz
			height := g.HeightAt(wx, wz)
			for ly := range SectionSize {
				wy := origin.Y + ly
				var b BlockType
				switch {
				case wy == 0:
					b = BlockTypeBedrock
				case wy == height+1 && wy > g.seaLevel && g.hasChest(wx, wz):
					b = BlockTypeChest
				case wy > height:
					if wy <= g.seaLevel {
						b = BlockTypeWater
					}
				case g.isCave(wx, wy, wz):
					if wy < 8 {
						b = BlockTypeLava
					}
				case wy == height:
					b = BlockTypeGrass
				case wy > height-4:
					b = BlockTypeDirt
				default:
					b = BlockTypeStone
				}
				s.SetBlock(lx, ly, lz, b)
			}
		}
	}
}

// FlatGenerator fills everything below a fixed height.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a generator with a flat surface at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

func (g *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return g.height
}

func (g *FlatGenerator) PopulateSection(s *Section) {
	origin := s.Pos.Origin()
	for ly := range SectionSize {
		wy := origin.Y + ly
		var b BlockType
		switch {
		case wy == 0:
			b = BlockTypeBedrock
		case wy < g.height:
			b = BlockTypeDirt
		case wy == g.height:
			b = BlockTypeGrass
		default:
			continue
		}
		for lx := range SectionSize {
			for lz := range SectionSize {
				s.SetBlock(lx, ly, lz, b)
			}
		}
	}
}
