package world

import "math"

// Deterministic value noise used by the terrain generator.

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// mix64 is a SplitMix64 finaliser.
func mix64(v uint64) uint64 {
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// lattice maps an integer lattice point to [0,1].
func lattice(x, y, z, seed int64) float64 {
	h := mix64(uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0x517CC1B727220A95 ^ uint64(z)*0x6C62272E07BB0142 ^ uint64(seed))
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise3D(x, y, z float64, seed int64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	fx, fy, fz := fade(x-x0), fade(y-y0), fade(z-z0)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	c := func(dx, dy, dz int64) float64 { return lattice(ix+dx, iy+dy, iz+dz, seed) }

	i00 := lerp(c(0, 0, 0), c(1, 0, 0), fx)
	i10 := lerp(c(0, 1, 0), c(1, 1, 0), fx)
	i01 := lerp(c(0, 0, 1), c(1, 0, 1), fx)
	i11 := lerp(c(0, 1, 1), c(1, 1, 1), fx)
	return lerp(lerp(i00, i10, fy), lerp(i01, i11, fy), fz)
}

// octaveNoise sums octaves of 3D value noise, normalised to [0,1].
// Pass y = 0 for a 2D heightmap.
func octaveNoise(x, y, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amplitude, frequency := 1.0, 1.0
	sum, norm := 0.0, 0.0
	for i := range octaves {
		sum += valueNoise3D(x*frequency, y*frequency, z*frequency, seed+int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
