// Package audio defines the waveform value type shared by the DSP,
// enhancement and synthesis packages.
package audio

import (
	"math"
	"time"
)

// Waveform represents a mono discrete-time audio signal: an ordered
// sequence of float64 samples (nominally in [-1, 1]) plus its sample rate.
// Processing stages treat a Waveform as a value and return a new one
// rather than mutating the input.
type Waveform struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
}

// New creates a waveform from a sample slice and sample rate.
func New(samples []float64, sampleRate int) *Waveform {
	return &Waveform{
		Samples:    samples,
		SampleRate: sampleRate,
	}
}

// Len returns the number of samples.
func (w *Waveform) Len() int {
	return len(w.Samples)
}

// Duration returns the playback duration of the waveform.
func (w *Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	seconds := float64(len(w.Samples)) / float64(w.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// Clone returns a deep copy of the waveform.
func (w *Waveform) Clone() *Waveform {
	samples := make([]float64, len(w.Samples))
	copy(samples, w.Samples)
	return &Waveform{
		Samples:    samples,
		SampleRate: w.SampleRate,
	}
}

// Peak returns the maximum absolute sample value.
func (w *Waveform) Peak() float64 {
	peak := 0.0
	for _, s := range w.Samples {
		if abs := math.Abs(s); abs > peak {
			peak = abs
		}
	}
	return peak
}
