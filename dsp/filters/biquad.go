// Package filters provides the second-order IIR filters used by the
// enhancement stages: band-pass sections for formant emphasis and a
// low-pass section for shaping breath noise.
//
// Coefficients follow Robert Bristow-Johnson's "Cookbook formulae for
// audio EQ biquad filter coefficients".
package filters

import (
	"fmt"
	"math"
)

// Biquad is a single second-order IIR section in direct form II.
type Biquad struct {
	b0, b1, b2 float64 // numerator coefficients
	a1, a2     float64 // denominator coefficients (a0 normalized to 1)

	w1, w2 float64 // state
}

// Process applies the filter to a single sample.
//
// Direct form II: w[n] = x[n] - a1*w[n-1] - a2*w[n-2]
// y[n] = b0*w[n] + b1*w[n-1] + b2*w[n-2]
func (f *Biquad) Process(input float64) float64 {
	w := input - f.a1*f.w1 - f.a2*f.w2
	output := f.b0*w + f.b1*f.w1 + f.b2*f.w2

	f.w2 = f.w1
	f.w1 = w

	return output
}

// ProcessBuffer applies the filter to an entire buffer of samples.
func (f *Biquad) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = f.Process(sample)
	}
	return output
}

// Reset clears the filter's internal state (delay line).
// Call this when processing discontinuous audio segments.
func (f *Biquad) Reset() {
	f.w1, f.w2 = 0.0, 0.0
}

// Coefficients returns the normalized biquad coefficients.
func (f *Biquad) Coefficients() (b0, b1, b2, a1, a2 float64) {
	return f.b0, f.b1, f.b2, f.a1, f.a2
}

// NewBandpass creates a band-pass section from explicit band edges.
// The passband [lowFreq, highFreq] must satisfy
// 0 < lowFreq < highFreq < sampleRate/2.
func NewBandpass(sampleRate int, lowFreq, highFreq float64) (*Biquad, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	nyquist := float64(sampleRate) / 2.0
	if lowFreq <= 0 || highFreq <= lowFreq || highFreq >= nyquist {
		return nil, fmt.Errorf("invalid passband [%g, %g] Hz for sample rate %d", lowFreq, highFreq, sampleRate)
	}

	centerFreq := math.Sqrt(lowFreq * highFreq)
	bandwidth := highFreq - lowFreq
	q := centerFreq / bandwidth

	w0 := 2.0 * math.Pi * centerFreq / float64(sampleRate)
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2.0 * q)

	a0 := 1.0 + alpha
	f := &Biquad{
		b0: alpha / a0,
		b1: 0.0,
		b2: -alpha / a0,
		a1: -2.0 * cosW0 / a0,
		a2: (1.0 - alpha) / a0,
	}
	return f, nil
}

// NewLowpass creates a low-pass section with the given cutoff frequency
// and Butterworth Q.
func NewLowpass(sampleRate int, cutoffFreq float64) (*Biquad, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	nyquist := float64(sampleRate) / 2.0
	if cutoffFreq <= 0 || cutoffFreq >= nyquist {
		return nil, fmt.Errorf("cutoff %g Hz out of range (0, %g)", cutoffFreq, nyquist)
	}

	const q = math.Sqrt2 / 2.0 // Butterworth

	w0 := 2.0 * math.Pi * cutoffFreq / float64(sampleRate)
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2.0 * q)

	a0 := 1.0 + alpha
	f := &Biquad{
		b0: (1.0 - cosW0) / 2.0 / a0,
		b1: (1.0 - cosW0) / a0,
		b2: (1.0 - cosW0) / 2.0 / a0,
		a1: -2.0 * cosW0 / a0,
		a2: (1.0 - alpha) / a0,
	}
	return f, nil
}

// FrequencyResponse computes the magnitude and phase response at the
// given frequency.
//
// H(e^jw) = (b0 + b1*e^-jw + b2*e^-j2w) / (1 + a1*e^-jw + a2*e^-j2w)
func (f *Biquad) FrequencyResponse(sampleRate int, frequency float64) (magnitude, phase float64) {
	w := 2.0 * math.Pi * frequency / float64(sampleRate)

	cosW := math.Cos(w)
	sinW := math.Sin(w)
	cos2W := math.Cos(2 * w)
	sin2W := math.Sin(2 * w)

	numReal := f.b0 + f.b1*cosW + f.b2*cos2W
	numImag := -f.b1*sinW - f.b2*sin2W

	denReal := 1.0 + f.a1*cosW + f.a2*cos2W
	denImag := -f.a1*sinW - f.a2*sin2W

	denMagSq := denReal*denReal + denImag*denImag

	hReal := (numReal*denReal + numImag*denImag) / denMagSq
	hImag := (numImag*denReal - numReal*denImag) / denMagSq

	magnitude = math.Sqrt(hReal*hReal + hImag*hImag)
	phase = math.Atan2(hImag, hReal)

	return magnitude, phase
}
