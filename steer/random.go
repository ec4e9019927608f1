package steer

// RandomSource supplies uniform values in [0, 1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// ScalarRandomWalk moves initial by a uniform offset in [-step/2, step/2]
// and clamps the result to [min, max].
func ScalarRandomWalk(rng RandomSource, initial, step, min, max float64) float64 {
	next := initial + (rng.Float64()-0.5)*step
	return Clamp(next, min, max)
}
