package enhance

import (
	"fmt"

	"github.com/sonavox/sonavox/dsp/common"
	"github.com/sonavox/sonavox/dsp/spectral"
)

// maxFFTSize bounds the spectral analysis window; shorter inputs get the
// largest power of two that still fits.
const maxFFTSize = 2048

// SpectralEnhancer reshapes the short-time magnitude spectrum with a
// linear gain ramp from 1.0 at DC to 1.0+level at Nyquist, emphasizing
// high frequencies to counter the muffled character of synthesized
// speech. At level 0 the ramp is flat and the transform is an identity
// within floating-point tolerance.
type SpectralEnhancer struct {
	stft *spectral.STFT
}

// NewSpectralEnhancer creates a new spectral enhancer.
func NewSpectralEnhancer() *SpectralEnhancer {
	return &SpectralEnhancer{stft: spectral.NewSTFT()}
}

// EnhanceSpectrum applies the treble-emphasis ramp and returns a signal
// of identical length.
func (e *SpectralEnhancer) EnhanceSpectrum(signal []float64, level float64) ([]float64, error) {
	if len(signal) == 0 {
		return signal, nil
	}

	fftSize := common.PrevPowerOfTwo(len(signal))
	if fftSize > maxFFTSize {
		fftSize = maxFFTSize
	}
	if fftSize < 8 {
		return nil, fmt.Errorf("signal too short for spectral analysis (%d samples)", len(signal))
	}
	hopSize := fftSize / 4

	spec, err := e.stft.Analyze(signal, fftSize, hopSize)
	if err != nil {
		return nil, fmt.Errorf("spectral analysis: %w", err)
	}

	bins := spec.FreqBins()
	gain := make([]float64, bins)
	for k := range gain {
		gain[k] = 1.0 + level*float64(k)/float64(bins-1)
	}
	if err := spec.ScaleMagnitudes(gain); err != nil {
		return nil, err
	}

	out, err := e.stft.Synthesize(spec)
	if err != nil {
		return nil, fmt.Errorf("spectral resynthesis: %w", err)
	}
	return out, nil
}
