package data

import "sectiongraph/internal/world"

// Flags is the render-pass bitfield of a built section.
type Flags uint32

const (
	FlagNone            Flags = 0
	FlagSolidGeometry   Flags = 1 << 0
	FlagCutoutGeometry  Flags = 1 << 1
	FlagTranslucent     Flags = 1 << 2
	FlagBlockEntities   Flags = 1 << 3
	FlagAnimatedSprites Flags = 1 << 4

	FlagAnyGeometry = FlagSolidGeometry | FlagCutoutGeometry | FlagTranslucent
)

// FlagForPass maps a block render pass to its geometry flag.
func FlagForPass(p world.RenderPass) Flags {
	switch p {
	case world.PassSolid:
		return FlagSolidGeometry
	case world.PassCutout:
		return FlagCutoutGeometry
	case world.PassTranslucent:
		return FlagTranslucent
	default:
		return FlagNone
	}
}

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// HasGeometry reports whether any pass has geometry to draw.
func (f Flags) HasGeometry() bool {
	return f&FlagAnyGeometry != 0
}
