package world

// Direction is one of the six cardinal faces of a section.
type Direction int

const (
	Down Direction = iota
	Up
	North
	South
	West
	East
)

// DirectionCount is the number of cardinal directions.
const DirectionCount = 6

// AllDirections lists every direction in ordinal order.
var AllDirections = [DirectionCount]Direction{Down, Up, North, South, West, East}

// DirectionSet is a bitfield with one bit per Direction.
type DirectionSet uint8

const (
	NoDirections    DirectionSet = 0
	AllDirectionSet DirectionSet = 1<<DirectionCount - 1
)

var directionOffsets = [DirectionCount][3]int{
	Down:  {0, -1, 0},
	Up:    {0, 1, 0},
	North: {0, 0, -1},
	South: {0, 0, 1},
	West:  {-1, 0, 0},
	East:  {1, 0, 0},
}

var directionNames = [DirectionCount]string{"down", "up", "north", "south", "west", "east"}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Offset returns the unit step in section (or block) space.
func (d Direction) Offset() [3]int {
	return directionOffsets[d]
}

// Bit returns the DirectionSet containing only d.
func (d Direction) Bit() DirectionSet {
	return 1 << d
}

func (d Direction) String() string {
	if d < 0 || d >= DirectionCount {
		return "invalid"
	}
	return directionNames[d]
}

// Has reports whether d is in the set.
func (s DirectionSet) Has(d Direction) bool {
	return s&d.Bit() != 0
}
