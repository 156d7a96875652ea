// Package visibility packs the face-to-face connectivity of a section into a
// single 64-bit word consumed by the occlusion culler.
//
// Bit (from*8 + to) is set when sight can enter the section through face
// `from` and leave it through face `to`. Only the low six bits of the first
// six bytes are ever used by a valid encoding.
package visibility

import "sectiongraph/internal/world"

// Data is an encoded connectivity word.
type Data uint64

// Null marks a section that has not been built. It never equals a valid
// encoding and yields no connections, so unbuilt sections stop traversal.
const Null Data = 1 << 63

const (
	validMask  Data   = 0x3F3F3F3F3F3F
	faceMask   uint64 = 0xFF
	bitsPerRow        = 8
)

func bit(from, to world.Direction) Data {
	return 1 << (uint(from)*bitsPerRow + uint(to))
}

// Connectivity is the decoded form: for each entry face, the set of exit faces.
type Connectivity [world.DirectionCount]world.DirectionSet

// SetVisibleThrough marks the pair (a, b) as connected in both directions.
func (c *Connectivity) SetVisibleThrough(a, b world.Direction) {
	c[a] |= b.Bit()
	c[b] |= a.Bit()
}

// IsVisibleThrough reports whether sight can pass from face `from` to face `to`.
func (c *Connectivity) IsVisibleThrough(from, to world.Direction) bool {
	return c[from].Has(to)
}

// SetAll marks every face pair as connected.
func (c *Connectivity) SetAll() {
	for i := range c {
		c[i] = world.AllDirectionSet
	}
}

// Encode packs connectivity. A nil connectivity means "no occlusion data",
// which is encoded as fully open.
func Encode(c *Connectivity) Data {
	if c == nil {
		return validMask
	}
	var d Data
	for _, from := range world.AllDirections {
		d |= Data(c[from]&world.AllDirectionSet) << (uint(from) * bitsPerRow)
	}
	return d
}

// Decode unpacks an encoding. It returns false for Null.
func Decode(d Data) (Connectivity, bool) {
	var c Connectivity
	if d.IsNull() {
		return c, false
	}
	for _, from := range world.AllDirections {
		c[from] = world.DirectionSet((uint64(d) >> (uint(from) * bitsPerRow)) & uint64(world.AllDirectionSet))
	}
	return c, true
}

// IsNull reports whether d is the unbuilt sentinel.
func (d Data) IsNull() bool {
	return d == Null
}

// IsVisibleThrough tests a single face pair of an encoding.
func (d Data) IsVisibleThrough(from, to world.Direction) bool {
	return !d.IsNull() && d&bit(from, to) != 0
}

// Connections returns the faces traversal may leave through, given the set of
// faces it entered from.
func Connections(d Data, incoming world.DirectionSet) world.DirectionSet {
	if d.IsNull() {
		return world.NoDirections
	}
	folded := uint64(d&validMask) & entryMask(incoming)
	folded |= folded >> 32
	folded |= folded >> 16
	folded |= folded >> 8
	return world.DirectionSet(folded) & world.AllDirectionSet
}

// entryMask selects the byte rows of every entry face in incoming.
func entryMask(incoming world.DirectionSet) uint64 {
	var m uint64
	for _, d := range world.AllDirections {
		if incoming.Has(d) {
			m |= faceMask << (uint(d) * bitsPerRow)
		}
	}
	return m
}
