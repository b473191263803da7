// Package windowing provides window functions and the windowed
// segmentation / weighted overlap-add machinery shared by the
// segment-wise enhancement stages.
package windowing

import "fmt"

// weightFloor is the minimum overlap weight before the divisor is clamped
// to 1.0 to avoid division by zero during reconstruction.
const weightFloor = 1e-3

// SegmentFunc transforms a single segment. The offset is the segment's
// start position in the source signal. The returned slice must have the
// same length as the input segment; an error drops the transform and the
// unmodified segment is used instead.
type SegmentFunc func(offset int, segment []float64) ([]float64, error)

// Segmenter splits a signal into overlapping fixed-length segments and
// reassembles processed segments via weighted overlap-add using a Hann
// window as both analysis taper and reconstruction weight.
//
// Segments start at 0, hop, 2*hop, ... while a full segment still fits
// before len(signal)-segmentLen; a trailing partial segment is never
// emitted, so samples in that tail receive zero windowed contribution.
type Segmenter struct {
	segmentLen int
	hopLen     int
	window     *Hann
}

// NewSegmenter creates a segmenter with the given segment and hop lengths.
func NewSegmenter(segmentLen, hopLen int) (*Segmenter, error) {
	if segmentLen <= 0 {
		return nil, fmt.Errorf("segment length must be positive, got %d", segmentLen)
	}
	if hopLen <= 0 || hopLen >= segmentLen {
		return nil, fmt.Errorf("hop length must be in (0, %d), got %d", segmentLen, hopLen)
	}
	return &Segmenter{
		segmentLen: segmentLen,
		hopLen:     hopLen,
		window:     NewHann(segmentLen, true),
	}, nil
}

// SegmentLen returns the segment length.
func (s *Segmenter) SegmentLen() int { return s.segmentLen }

// HopLen returns the hop length.
func (s *Segmenter) HopLen() int { return s.hopLen }

// Window returns the segmenter's Hann window.
func (s *Segmenter) Window() *Hann { return s.window }

// Offsets returns the start offsets of all full segments in a signal of
// the given length.
func (s *Segmenter) Offsets(signalLen int) []int {
	var offsets []int
	for i := 0; i < signalLen-s.segmentLen; i += s.hopLen {
		offsets = append(offsets, i)
	}
	return offsets
}

// Process applies fn to every full segment of the signal and reconstructs
// the result via weighted overlap-add. The output has the same length as
// the input. If the signal is shorter than one segment the input is
// returned unchanged.
func (s *Segmenter) Process(signal []float64, fn SegmentFunc) []float64 {
	if len(signal) <= s.segmentLen {
		return signal
	}

	acc := NewOverlapAccumulator(len(signal))
	coeffs := s.window.Coefficients()

	segment := make([]float64, s.segmentLen)
	for i := 0; i < len(signal)-s.segmentLen; i += s.hopLen {
		copy(segment, signal[i:i+s.segmentLen])

		processed, err := fn(i, segment)
		if err != nil || len(processed) != s.segmentLen {
			// Failed transforms contribute the unmodified segment.
			processed = segment
		}

		acc.Add(i, processed, coeffs)
	}

	return acc.Finalize()
}

// OverlapAccumulator reconstructs a signal from overlapping windowed
// segments. It maintains parallel sample-sum and window-weight buffers;
// Finalize divides elementwise, clamping near-zero weights to 1.0.
type OverlapAccumulator struct {
	sum    []float64
	weight []float64
}

// NewOverlapAccumulator creates an accumulator for an output of n samples.
func NewOverlapAccumulator(n int) *OverlapAccumulator {
	return &OverlapAccumulator{
		sum:    make([]float64, n),
		weight: make([]float64, n),
	}
}

// Len returns the accumulator's buffer length.
func (a *OverlapAccumulator) Len() int { return len(a.sum) }

// Add accumulates values*weights at the given offset. Samples that would
// fall outside the buffer are ignored. values and weights must have equal
// length.
func (a *OverlapAccumulator) Add(offset int, values, weights []float64) {
	for j := range values {
		idx := offset + j
		if idx < 0 || idx >= len(a.sum) {
			continue
		}
		a.sum[idx] += values[j] * weights[j]
		a.weight[idx] += weights[j]
	}
}

// Fits reports whether a segment of the given length starting at offset
// lies fully inside the accumulator.
func (a *OverlapAccumulator) Fits(offset, length int) bool {
	return offset >= 0 && offset+length <= len(a.sum)
}

// LastWeighted returns the index just past the last sample that received
// any weight, or 0 if nothing was accumulated.
func (a *OverlapAccumulator) LastWeighted() int {
	for i := len(a.weight) - 1; i >= 0; i-- {
		if a.weight[i] != 0 {
			return i + 1
		}
	}
	return 0
}

// Finalize normalizes the accumulated sums by the accumulated weights and
// returns the reconstructed signal. Weights below 1e-3 are clamped to 1.0
// so unweighted samples come out as zero rather than NaN.
func (a *OverlapAccumulator) Finalize() []float64 {
	out := make([]float64, len(a.sum))
	for i := range a.sum {
		w := a.weight[i]
		if w < weightFloor {
			w = 1.0
		}
		out[i] = a.sum[i] / w
	}
	return out
}

// FinalizeTrimmed is Finalize restricted to the weighted prefix of the
// buffer. Used by variable-rate stages whose output length is not known
// up front.
func (a *OverlapAccumulator) FinalizeTrimmed() []float64 {
	n := a.LastWeighted()
	out := make([]float64, n)
	for i := range out {
		w := a.weight[i]
		if w < weightFloor {
			w = 1.0
		}
		out[i] = a.sum[i] / w
	}
	return out
}
