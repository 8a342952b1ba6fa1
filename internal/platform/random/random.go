package random

import "math/rand/v2"

// Source yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// System draws from the goroutine-safe global generator.
type System struct{}

func (System) Float64() float64 {
	return rand.Float64()
}

// Seeded returns a deterministic generator for tests and replays.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
