package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sectiongraph/internal/world"
)

func TestNullBlocksEverything(t *testing.T) {
	assert.True(t, Null.IsNull())
	assert.Equal(t, world.NoDirections, Connections(Null, world.AllDirectionSet))
	for _, a := range world.AllDirections {
		for _, b := range world.AllDirections {
			assert.False(t, Null.IsVisibleThrough(a, b))
		}
	}

	_, ok := Decode(Null)
	assert.False(t, ok)
}

func TestNullDistinctFromValidEncodings(t *testing.T) {
	var closed Connectivity
	assert.NotEqual(t, Null, Encode(&closed))
	assert.NotEqual(t, Null, Encode(nil))

	var open Connectivity
	open.SetAll()
	assert.NotEqual(t, Null, Encode(&open))
	assert.Equal(t, Encode(nil), Encode(&open))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var c Connectivity
	c.SetVisibleThrough(world.Up, world.Down)
	c.SetVisibleThrough(world.North, world.East)

	d := Encode(&c)
	got, ok := Decode(d)
	require.True(t, ok)
	assert.Equal(t, c, got)

	assert.True(t, d.IsVisibleThrough(world.Up, world.Down))
	assert.True(t, d.IsVisibleThrough(world.Down, world.Up))
	assert.True(t, d.IsVisibleThrough(world.East, world.North))
	assert.False(t, d.IsVisibleThrough(world.Up, world.North))
	assert.False(t, d.IsVisibleThrough(world.West, world.East))
}

func TestConnections(t *testing.T) {
	var c Connectivity
	c.SetVisibleThrough(world.Up, world.Down)
	c.SetVisibleThrough(world.West, world.South)
	d := Encode(&c)

	tests := []struct {
		name     string
		incoming world.DirectionSet
		want     world.DirectionSet
	}{
		{"none", world.NoDirections, world.NoDirections},
		{"from up", world.Up.Bit(), world.Down.Bit()},
		{"from west", world.West.Bit(), world.South.Bit()},
		{"from up and south", world.Up.Bit() | world.South.Bit(), world.Down.Bit() | world.West.Bit()},
		{"from north", world.North.Bit(), world.NoDirections},
		{"all", world.AllDirectionSet, world.Up.Bit() | world.Down.Bit() | world.West.Bit() | world.South.Bit()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Connections(d, tc.incoming))
		})
	}
}

func TestConnectionsFullyOpen(t *testing.T) {
	open := Encode(nil)
	for _, d := range world.AllDirections {
		assert.Equal(t, world.AllDirectionSet, Connections(open, d.Bit()), d.String())
	}
}

func TestConnectionsFullyClosed(t *testing.T) {
	var closed Connectivity
	assert.Equal(t, world.NoDirections, Connections(Encode(&closed), world.AllDirectionSet))
}
