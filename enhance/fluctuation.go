package enhance

import (
	"github.com/sonavox/sonavox/dsp/common"
	"github.com/sonavox/sonavox/dsp/random"
)

const (
	// fluctuationScale maps the normalized fluctuation rate to a noise
	// standard deviation.
	fluctuationScale = 0.05

	// fluctuationMaxWindow caps the smoothing window of the gain field.
	fluctuationMaxWindow = 128
)

// FluctuationModulator applies a smoothed multiplicative random gain
// field centered at 1.0, introducing the small amplitude instability of
// a human voice.
type FluctuationModulator struct {
	rnd random.Source
}

// NewFluctuationModulator creates a fluctuation modulator drawing noise
// from the given source.
func NewFluctuationModulator(rnd random.Source) *FluctuationModulator {
	return &FluctuationModulator{rnd: rnd}
}

// AddFluctuation modulates the signal with a gain field of standard
// deviation rate*0.05. This is the scaling the pipeline uses.
func (f *FluctuationModulator) AddFluctuation(signal []float64, rate float64) []float64 {
	return f.AddFluctuationStdDev(signal, rate*fluctuationScale)
}

// AddFluctuationStdDev modulates the signal with a gain field of the
// given raw standard deviation, for callers that tune the noise magnitude
// directly.
func (f *FluctuationModulator) AddFluctuationStdDev(signal []float64, stdDev float64) []float64 {
	if len(signal) == 0 {
		return signal
	}

	field := f.rnd.NormVector(len(signal), 1.0, stdDev)

	// Smooth the field so the gain changes cannot produce zipper noise.
	windowSize := len(signal) / 10
	if windowSize > fluctuationMaxWindow {
		windowSize = fluctuationMaxWindow
	}
	if windowSize < 2 {
		windowSize = 2
	}
	smoothed := common.CenteredMovingAverage(field, windowSize)

	out := make([]float64, len(signal))
	for i := range signal {
		out[i] = signal[i] * smoothed[i]
	}
	return out
}
