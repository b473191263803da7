// Package random provides the injectable Gaussian noise source used by
// the stochastic enhancement stages. Injecting a seeded source makes
// every noise-consuming stage reproducible in tests.
package random

import (
	"math/rand"
	"time"
)

// Source supplies Gaussian random values to the enhancement stages.
type Source interface {
	// NormFloat64 returns one sample from the standard normal distribution.
	NormFloat64() float64

	// NormVector returns n samples from N(mean, stdDev).
	NormVector(n int, mean, stdDev float64) []float64
}

// GaussianSource is a Source backed by math/rand.
type GaussianSource struct {
	rng *rand.Rand
}

// NewSource creates a deterministic source from a seed.
func NewSource(seed int64) *GaussianSource {
	return &GaussianSource{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSource creates a source seeded from the current time.
func NewTimeSource() *GaussianSource {
	return NewSource(time.Now().UnixNano())
}

// NormFloat64 returns one standard normal sample.
func (g *GaussianSource) NormFloat64() float64 {
	return g.rng.NormFloat64()
}

// NormVector returns n samples from N(mean, stdDev).
func (g *GaussianSource) NormVector(n int, mean, stdDev float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + stdDev*g.rng.NormFloat64()
	}
	return out
}
