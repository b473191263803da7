package enhance

import (
	"fmt"

	"github.com/sonavox/sonavox/dsp/filters"
	"github.com/sonavox/sonavox/dsp/random"
	"github.com/sonavox/sonavox/dsp/temporal"
)

const (
	// breathNoiseStdDev is the pre-filter standard deviation of the
	// generated breath noise.
	breathNoiseStdDev = 0.01

	// breathCutoffHz is the low-pass cutoff that shapes white noise into
	// a breath-like spectrum.
	breathCutoffHz = 2000.0

	// breathEnvelopeMaxWindow caps the envelope smoothing window.
	breathEnvelopeMaxWindow = 1000
)

// BreathinessSynthesizer mixes low-pass-filtered noise into the signal,
// modulated by the signal's own smoothed amplitude envelope so breath is
// inaudible in silence and proportional during voiced segments.
type BreathinessSynthesizer struct {
	rnd      random.Source
	envelope *temporal.Envelope
}

// NewBreathinessSynthesizer creates a breathiness synthesizer drawing
// noise from the given source.
func NewBreathinessSynthesizer(rnd random.Source) *BreathinessSynthesizer {
	return &BreathinessSynthesizer{
		rnd:      rnd,
		envelope: temporal.NewEnvelope(),
	}
}

// AddBreathiness returns signal + noise*envelope*amount.
func (b *BreathinessSynthesizer) AddBreathiness(signal []float64, sampleRate int, amount float64) ([]float64, error) {
	if len(signal) == 0 {
		return signal, nil
	}

	noise := b.rnd.NormVector(len(signal), 0, breathNoiseStdDev)

	lowpass, err := filters.NewLowpass(sampleRate, breathCutoffHz)
	if err != nil {
		return nil, fmt.Errorf("breath noise filter: %w", err)
	}
	breath := lowpass.ProcessBuffer(noise)

	windowSize := len(signal) / 10
	if windowSize > breathEnvelopeMaxWindow {
		windowSize = breathEnvelopeMaxWindow
	}
	envelope := b.envelope.ComputeSmoothed(signal, windowSize)

	out := make([]float64, len(signal))
	for i := range signal {
		out[i] = signal[i] + breath[i]*envelope[i]*amount
	}
	return out, nil
}
