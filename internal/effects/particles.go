// Package effects holds the decorative feedback shown around the pad:
// floating background particles, the confetti burst for confident
// predictions, and toast notifications. None of it affects the drawing
// or the prediction flow.
package effects

import (
	"math/rand/v2"
	"time"
)

const (
	DefaultParticles = 30

	particleMaxDelay    = 20 * time.Second
	particleMinDuration = 15 * time.Second
	particleSpread      = 10 * time.Second
)

// Particle floats from the bottom of the window to the top, forever.
type Particle struct {
	Left     float64 // horizontal position, percent of the width
	Delay    time.Duration
	Duration time.Duration // one bottom-to-top pass
}

// Particles generates n particles with randomized position and timing.
func Particles(n int, rng *rand.Rand) []Particle {
	out := make([]Particle, n)
	for i := range out {
		out[i] = Particle{
			Left:     rng.Float64() * 100,
			Delay:    time.Duration(rng.Float64() * float64(particleMaxDelay)),
			Duration: particleMinDuration + time.Duration(rng.Float64()*float64(particleSpread)),
		}
	}
	return out
}

// Progress returns how far along its current pass the particle is after
// elapsed, in [0,1). It is negative while the particle is still delayed.
func (p Particle) Progress(elapsed time.Duration) float64 {
	if elapsed < p.Delay {
		return -1
	}
	if p.Duration <= 0 {
		return 0
	}
	into := (elapsed - p.Delay) % p.Duration
	return float64(into) / float64(p.Duration)
}
