package motion

import (
	"math"
	"math/rand"
)

// RandomPosition picks a centre position that keeps the whole footprint
// inside the arena. Sampling only the valid range (instead of sampling the
// full arena and clamping) avoids piling spawns up on the edges.
// Axes where the footprint does not fit get the arena's midpoint.
func RandomPosition(rng *rand.Rand, a Arena, footprint []float64) []float64 {
	bounds := ComputeBounds(a, footprint)
	pos := make([]float64, len(bounds))
	for i, r := range bounds {
		if r.Degenerate() {
			pos[i] = r.Mid()
			continue
		}
		pos[i] = r.Min + rng.Float64()*(r.Max-r.Min)
	}
	return pos
}

// RandomDirection returns a unit vector with non-negative components drawn
// uniformly from [0, 1) before normalisation. The all-zero draw falls back
// to the first axis.
func RandomDirection(rng *rand.Rand, dims int) []float64 {
	dir := make([]float64, dims)
	for i := range dir {
		dir[i] = rng.Float64()
	}
	if Normalize(dir) == 0 && dims > 0 {
		dir[0] = 1
	}
	return dir
}

// Normalize scales v to unit length in place and returns its original
// length. A zero vector is left untouched.
func Normalize(v []float64) float64 {
	var sum float64
	for _, c := range v {
		sum += c * c
	}
	length := math.Sqrt(sum)
	if length == 0 {
		return 0
	}
	for i := range v {
		v[i] /= length
	}
	return length
}
