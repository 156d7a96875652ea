package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionCoord(t *testing.T) {
	tests := []struct {
		in   float32
		want int
	}{
		{0, 0},
		{15.9, 0},
		{16, 1},
		{-0.1, -1},
		{-16, -1},
		{-16.5, -2},
		{40, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SectionCoord(tt.in), "SectionCoord(%v)", tt.in)
	}
}

func TestBlockPosSection(t *testing.T) {
	b := BlockPos{X: -1, Y: 17, Z: 32}
	assert.Equal(t, SectionPos{X: -1, Y: 1, Z: 2}, b.SectionPos())
	x, y, z := b.Local()
	assert.Equal(t, [3]int{15, 1, 0}, [3]int{x, y, z})
	assert.Equal(t, BlockPos{X: 32, Y: 48, Z: 64}, SectionPos{X: 2, Y: 3, Z: 4}.Origin())
}

func TestDirections(t *testing.T) {
	for _, d := range AllDirections {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.NotEqual(t, d, d.Opposite())

		o, opp := d.Offset(), d.Opposite().Offset()
		assert.Equal(t, [3]int{-o[0], -o[1], -o[2]}, opp)

		p := SectionPos{X: 3, Y: 4, Z: 5}
		assert.Equal(t, p, p.Offset(d).Offset(d.Opposite()))
	}
	assert.Equal(t, Up, Down.Opposite())
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, East, West.Opposite())
	assert.Equal(t, "north", North.String())
	assert.Equal(t, "invalid", Direction(9).String())

	var set DirectionSet
	for _, d := range AllDirections {
		set |= d.Bit()
	}
	assert.Equal(t, AllDirectionSet, set)
	assert.True(t, set.Has(East))
	assert.False(t, NoDirections.Has(East))
}
