package enhance

import (
	"fmt"

	"github.com/sonavox/sonavox/dsp/windowing"
)

// SegmentModel transforms one fixed-length block of samples. The returned
// slice must have the same length as the input. Implementations wrap
// whatever external enhancement model is in use; the library ships none.
type SegmentModel interface {
	Transform(segment []float64) ([]float64, error)
}

// SegmentModelFunc adapts a function to the SegmentModel interface.
type SegmentModelFunc func(segment []float64) ([]float64, error)

// Transform calls the wrapped function.
func (f SegmentModelFunc) Transform(segment []float64) ([]float64, error) {
	return f(segment)
}

// SegmentwiseEnhancer is the alternative enhancement path: it runs an
// arbitrary block model over the waveform in overlapping fixed-size
// segments and reassembles the output via Hann overlap-add. The final
// partial segment is zero-padded to the block size before the model sees
// it and trimmed again on reassembly.
type SegmentwiseEnhancer struct {
	segmentSize int
	hopSize     int
	model       SegmentModel
}

// NewSegmentwiseEnhancer creates a segment-wise enhancer. overlap is the
// fraction of each segment shared with the next, in [0, 1).
func NewSegmentwiseEnhancer(model SegmentModel, segmentSize int, overlap float64) (*SegmentwiseEnhancer, error) {
	if model == nil {
		return nil, fmt.Errorf("model must not be nil")
	}
	if segmentSize <= 0 {
		return nil, fmt.Errorf("segment size must be positive, got %d", segmentSize)
	}
	if overlap < 0 || overlap >= 1 {
		return nil, fmt.Errorf("overlap must be in [0, 1), got %g", overlap)
	}

	hopSize := int(float64(segmentSize) * (1.0 - overlap))
	if hopSize < 1 {
		hopSize = 1
	}
	return &SegmentwiseEnhancer{
		segmentSize: segmentSize,
		hopSize:     hopSize,
		model:       model,
	}, nil
}

// DefaultSegmentwiseEnhancer uses 16384-sample segments with 25% overlap.
func DefaultSegmentwiseEnhancer(model SegmentModel) (*SegmentwiseEnhancer, error) {
	return NewSegmentwiseEnhancer(model, 16384, 0.25)
}

// Enhance runs the model over every segment and returns a signal of the
// input length. A model error aborts the whole pass; unlike the
// stochastic stages there is no per-segment identity fallback here, since
// half model output and half passthrough would be audible.
func (e *SegmentwiseEnhancer) Enhance(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return signal, nil
	}

	window := windowing.NewHann(e.segmentSize, true)
	coeffs := window.Coefficients()

	sum := make([]float64, len(signal))
	weight := make([]float64, len(signal))

	padded := make([]float64, e.segmentSize)
	for start := 0; start < len(signal); start += e.hopSize {
		end := start + e.segmentSize
		if end > len(signal) {
			end = len(signal)
		}

		for i := range padded {
			padded[i] = 0
		}
		copy(padded, signal[start:end])

		enhanced, err := e.model.Transform(padded)
		if err != nil {
			return nil, fmt.Errorf("segment at %d: %w", start, err)
		}
		if len(enhanced) != e.segmentSize {
			return nil, fmt.Errorf("segment at %d: model returned %d samples, want %d", start, len(enhanced), e.segmentSize)
		}

		for j := 0; j < end-start; j++ {
			sum[start+j] += enhanced[j] * coeffs[j]
			weight[start+j] += coeffs[j]
		}
	}

	out := make([]float64, len(signal))
	for i := range out {
		w := weight[i]
		if w < 1e-10 {
			w = 1.0
		}
		out[i] = sum[i] / w
	}
	return out, nil
}
