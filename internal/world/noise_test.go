package world

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatticeDeterministic(t *testing.T) {
	first := lattice(10, 20, 30, 42)
	for range 100 {
		assert.Equal(t, first, lattice(10, 20, 30, 42))
	}
	assert.NotEqual(t, lattice(1, 2, 3, 42), lattice(3, 2, 1, 42), "axes must not be interchangeable")
	assert.NotEqual(t, lattice(1, 1, 1, 100), lattice(1, 1, 1, 200))
}

func TestValueNoise3DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for range 1000 {
		x := rng.Float64()*2000 - 1000
		y := rng.Float64()*2000 - 1000
		z := rng.Float64()*2000 - 1000
		v := valueNoise3D(x, y, z, 42)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestValueNoise3DContinuity(t *testing.T) {
	const step = 1e-4
	for i := range 100 {
		x := float64(i) * 0.37
		a := valueNoise3D(x, 1.5, -2.25, 7)
		b := valueNoise3D(x+step, 1.5, -2.25, 7)
		assert.Less(t, math.Abs(a-b), 0.01, "jump at x=%f", x)
	}
}

func TestOctaveNoiseRange(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for range 500 {
		v := octaveNoise(rng.Float64()*100, 0, rng.Float64()*100, 3, 4, 0.5, 2.0)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Zero(t, octaveNoise(1, 2, 3, 4, 0, 0.5, 2.0))
}
