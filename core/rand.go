package core

import "math/rand/v2"

// RandSource supplies the randomness used for latency, fault
// injection, and canned output selection. Tests substitute a
// deterministic source.
type RandSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) IntN(n int) int   { return rand.IntN(n) }

// SystemRand returns a RandSource backed by math/rand/v2.
func SystemRand() RandSource { return systemRand{} }
