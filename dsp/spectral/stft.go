// Package spectral provides short-time Fourier analysis and resynthesis.
// Analysis is centered: the signal is reflect-padded by half a window on
// each side so every input sample is covered by full analysis frames and
// an unmodified spectrogram resynthesizes the input within floating-point
// tolerance.
package spectral

import (
	"fmt"
	"math/cmplx"

	"github.com/sonavox/sonavox/dsp/windowing"
)

// Spectrogram holds the complex STFT of a signal along with the analysis
// geometry needed to invert it.
type Spectrogram struct {
	Frames     [][]complex128 // full FFT bins per frame, len(Frames[i]) == WindowSize
	WindowSize int
	HopSize    int
	SignalLen  int // length of the original (unpadded) signal
}

// FreqBins returns the number of non-redundant frequency bins
// (DC through Nyquist).
func (s *Spectrogram) FreqBins() int {
	return s.WindowSize/2 + 1
}

// NumFrames returns the number of analysis frames.
func (s *Spectrogram) NumFrames() int {
	return len(s.Frames)
}

// ScaleMagnitudes multiplies the magnitude of every frame by the given
// per-bin gain, leaving phase untouched. The gain covers the non-redundant
// bins (DC through Nyquist); mirrored bins receive the conjugate-symmetric
// gain so resynthesis stays real-valued.
func (s *Spectrogram) ScaleMagnitudes(gain []float64) error {
	if len(gain) != s.FreqBins() {
		return fmt.Errorf("gain length %d does not match %d frequency bins", len(gain), s.FreqBins())
	}

	n := s.WindowSize
	for _, frame := range s.Frames {
		for k := 0; k < len(gain); k++ {
			frame[k] *= complex(gain[k], 0)
		}
		for k := len(gain); k < n; k++ {
			frame[k] *= complex(gain[n-k], 0)
		}
	}
	return nil
}

// STFT performs short-time Fourier analysis and resynthesis.
type STFT struct {
	fft *FFT
}

// NewSTFT creates a new STFT processor.
func NewSTFT() *STFT {
	return &STFT{fft: NewFFT()}
}

// Analyze computes the centered STFT of a signal.
func (s *STFT) Analyze(signal []float64, windowSize, hopSize int) (*Spectrogram, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if windowSize <= 0 || hopSize <= 0 {
		return nil, fmt.Errorf("window size and hop size must be positive, got %d and %d", windowSize, hopSize)
	}
	if windowSize > len(signal) {
		return nil, fmt.Errorf("window size %d exceeds signal length %d", windowSize, len(signal))
	}

	padded := reflectPad(signal, windowSize/2)
	numFrames := 1 + (len(padded)-windowSize)/hopSize

	window := windowing.NewHann(windowSize, false)
	frames := make([][]complex128, numFrames)

	buf := make([]float64, windowSize)
	for i := range numFrames {
		start := i * hopSize
		copy(buf, padded[start:start+windowSize])
		if err := window.ApplyInPlace(buf); err != nil {
			return nil, err
		}
		frames[i] = s.fft.Compute(buf)
	}

	return &Spectrogram{
		Frames:     frames,
		WindowSize: windowSize,
		HopSize:    hopSize,
		SignalLen:  len(signal),
	}, nil
}

// Synthesize inverts a spectrogram via windowed overlap-add, trimming the
// center padding so the output has exactly spec.SignalLen samples.
func (s *STFT) Synthesize(spec *Spectrogram) ([]float64, error) {
	if spec == nil || len(spec.Frames) == 0 {
		return nil, fmt.Errorf("empty spectrogram")
	}

	window := windowing.NewHann(spec.WindowSize, false)
	coeffs := window.Coefficients()

	paddedLen := spec.WindowSize + (len(spec.Frames)-1)*spec.HopSize
	sum := make([]float64, paddedLen)
	weight := make([]float64, paddedLen)

	for i, frame := range spec.Frames {
		if len(frame) != spec.WindowSize {
			return nil, fmt.Errorf("frame %d has %d bins, want %d", i, len(frame), spec.WindowSize)
		}
		recovered := s.fft.ComputeInverseReal(frame)

		start := i * spec.HopSize
		for j := range recovered {
			sum[start+j] += recovered[j] * coeffs[j]
			weight[start+j] += coeffs[j] * coeffs[j]
		}
	}

	// Analysis frames carry one window, synthesis adds another, so the
	// divisor is the accumulated squared window.
	out := make([]float64, paddedLen)
	for i := range sum {
		w := weight[i]
		if w < 1e-8 {
			w = 1.0
		}
		out[i] = sum[i] / w
	}

	lead := spec.WindowSize / 2
	end := lead + spec.SignalLen
	if end > len(out) {
		end = len(out)
	}
	trimmed := make([]float64, spec.SignalLen)
	copy(trimmed, out[lead:end])
	return trimmed, nil
}

// Magnitude returns the magnitude of the non-redundant bins of one frame.
func Magnitude(frame []complex128) []float64 {
	bins := len(frame)/2 + 1
	mag := make([]float64, bins)
	for k := 0; k < bins; k++ {
		mag[k] = cmplx.Abs(frame[k])
	}
	return mag
}

// reflectPad mirrors the signal around its endpoints, numpy "reflect"
// style (the edge sample itself is not repeated).
func reflectPad(signal []float64, pad int) []float64 {
	n := len(signal)
	out := make([]float64, n+2*pad)
	copy(out[pad:], signal)

	if n == 1 {
		for i := range out {
			out[i] = signal[0]
		}
		return out
	}

	for i := 1; i <= pad; i++ {
		src := i % (2 * (n - 1))
		if src >= n {
			src = 2*(n-1) - src
		}
		out[pad-i] = signal[src]

		src = (n - 1 - i) % (2 * (n - 1))
		if src < 0 {
			src += 2 * (n - 1)
		}
		if src >= n {
			src = 2*(n-1) - src
		}
		out[pad+n-1+i] = signal[src]
	}
	return out
}
