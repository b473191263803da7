// Package temporal provides time-domain signal measurements.
package temporal

import (
	"math"

	"github.com/sonavox/sonavox/dsp/common"
)

// Envelope provides amplitude envelope extraction
type Envelope struct {
	// No state needed - stateless calculation
}

// NewEnvelope creates a new envelope extractor
func NewEnvelope() *Envelope {
	return &Envelope{}
}

// ComputeAmplitude returns the instantaneous amplitude envelope: the
// absolute value of each sample.
func (e *Envelope) ComputeAmplitude(signal []float64) []float64 {
	envelope := make([]float64, len(signal))
	for i, v := range signal {
		envelope[i] = math.Abs(v)
	}
	return envelope
}

// ComputeSmoothed returns the amplitude envelope smoothed with a centered
// moving average of the given window size. Window sizes below 2 are
// raised to 2 so the envelope always carries some smoothing.
func (e *Envelope) ComputeSmoothed(signal []float64, windowSize int) []float64 {
	if len(signal) == 0 {
		return []float64{}
	}
	if windowSize < 2 {
		windowSize = 2
	}
	return common.CenteredMovingAverage(e.ComputeAmplitude(signal), windowSize)
}
