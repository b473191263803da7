package enhance

import (
	"github.com/sonavox/sonavox/dsp/random"
	"github.com/sonavox/sonavox/dsp/temporal"
)

// textureNoiseStdDev is the standard deviation of the raw texture noise.
const textureNoiseStdDev = 0.01

// VocalTexture adds an unfiltered, envelope-modulated noise component
// approximating vocal-fold grain. It is not part of the standard pipeline
// sequence; callers apply it separately when a rougher voice is wanted.
type VocalTexture struct {
	rnd      random.Source
	envelope *temporal.Envelope
}

// NewVocalTexture creates a vocal texture stage drawing noise from the
// given source.
func NewVocalTexture(rnd random.Source) *VocalTexture {
	return &VocalTexture{
		rnd:      rnd,
		envelope: temporal.NewEnvelope(),
	}
}

// AddTexture returns signal + noise*|signal|*amount. Unlike breathiness
// the noise is not low-pass filtered and the envelope is not smoothed, so
// the grain tracks the waveform sample by sample.
func (t *VocalTexture) AddTexture(signal []float64, amount float64) []float64 {
	if len(signal) == 0 {
		return signal
	}

	noise := t.rnd.NormVector(len(signal), 0, textureNoiseStdDev)
	envelope := t.envelope.ComputeAmplitude(signal)

	out := make([]float64, len(signal))
	for i := range signal {
		out[i] = signal[i] + noise[i]*envelope[i]*amount
	}
	return out
}
