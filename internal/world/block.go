package world

type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeStone
	BlockTypeDirt
	BlockTypeGrass
	BlockTypeBedrock
	BlockTypeGlass
	BlockTypeLeaves
	BlockTypeWater
	BlockTypeLava
	BlockTypeChest
	BlockTypeBeacon

	blockTypeCount
)

// RenderPass selects which geometry pass a block's faces are drawn in.
type RenderPass uint8

const (
	PassNone RenderPass = iota
	PassSolid
	PassCutout
	PassTranslucent
)

// EntityKind describes whether a block carries a block entity and how it is culled.
type EntityKind uint8

const (
	EntityNone EntityKind = iota
	// EntityCulled entities are only drawn while their section is visible.
	EntityCulled
	// EntityGlobal entities are drawn regardless of section visibility (e.g. beams).
	EntityGlobal
)

// BlockInfo holds the static render properties of a block type.
type BlockInfo struct {
	Name   string
	Opaque bool // fully occludes light and sight through all faces
	Pass   RenderPass
	Entity EntityKind
	Sprite string // animated sprite, empty if static
}

var blockInfos = [blockTypeCount]BlockInfo{
	BlockTypeAir:     {Name: "air"},
	BlockTypeStone:   {Name: "stone", Opaque: true, Pass: PassSolid},
	BlockTypeDirt:    {Name: "dirt", Opaque: true, Pass: PassSolid},
	BlockTypeGrass:   {Name: "grass", Opaque: true, Pass: PassSolid},
	BlockTypeBedrock: {Name: "bedrock", Opaque: true, Pass: PassSolid},
	BlockTypeGlass:   {Name: "glass", Pass: PassCutout},
	BlockTypeLeaves:  {Name: "leaves", Pass: PassCutout},
	BlockTypeWater:   {Name: "water", Pass: PassTranslucent, Sprite: "water_still"},
	BlockTypeLava:    {Name: "lava", Pass: PassSolid, Sprite: "lava_still"},
	BlockTypeChest:   {Name: "chest", Entity: EntityCulled},
	BlockTypeBeacon:  {Name: "beacon", Pass: PassCutout, Entity: EntityGlobal},
}

// Info returns the render properties of the block type. Unknown types render as air.
func (b BlockType) Info() BlockInfo {
	if b >= blockTypeCount {
		return blockInfos[BlockTypeAir]
	}
	return blockInfos[b]
}

// IsOpaque reports whether the block fully blocks visibility.
func (b BlockType) IsOpaque() bool {
	return b.Info().Opaque
}

func (b BlockType) String() string {
	return b.Info().Name
}
