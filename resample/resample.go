// Package resample converts signals between sample rates. The quality
// path wraps the pure-Go polyphase resampler; Linear provides the cheap
// exact-length interpolation used to pin stage outputs to a required
// sample count.
package resample

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Linear resamples x to exactly n samples by linear interpolation.
// It is the identity when len(x) == n.
func Linear(x []float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if len(x) == 0 {
		return make([]float64, n)
	}
	if len(x) == n {
		out := make([]float64, n)
		copy(out, x)
		return out
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = x[0]
		return out
	}

	scale := float64(len(x)-1) / float64(n-1)
	for i := range out {
		pos := float64(i) * scale
		idx := int(pos)
		if idx >= len(x)-1 {
			out[i] = x[len(x)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = x[idx] + frac*(x[idx+1]-x[idx])
	}
	return out
}

// Rate converts a mono signal from srcRate to dstRate using the polyphase
// resampler. The expected output length is round(len(x)*dstRate/srcRate);
// the streaming resampler is drained with silence until it has produced
// that many samples.
func Rate(x []float64, srcRate, dstRate float64) ([]float64, error) {
	if srcRate <= 0 || dstRate <= 0 {
		return nil, fmt.Errorf("rates must be positive, got %g -> %g", srcRate, dstRate)
	}
	if len(x) == 0 {
		return []float64{}, nil
	}
	if srcRate == dstRate {
		out := make([]float64, len(x))
		copy(out, x)
		return out, nil
	}

	rs, err := resampling.New(&resampling.Config{
		InputRate:  srcRate,
		OutputRate: dstRate,
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("create resampler: %w", err)
	}

	expected := int(float64(len(x))*dstRate/srcRate + 0.5)

	out, err := rs.Process(x)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	// Push silence through to flush the filter tail.
	drain := make([]float64, 256)
	for attempts := 0; len(out) < expected && attempts < 64; attempts++ {
		more, err := rs.Process(drain)
		if err != nil {
			break
		}
		if len(more) == 0 && attempts > 4 {
			break
		}
		out = append(out, more...)
	}

	if len(out) > expected {
		out = out[:expected]
	}
	if len(out) < expected {
		// The filter withheld part of the tail; stretch what we have.
		out = Linear(out, expected)
	}
	return out, nil
}

// ToLength resamples x to exactly n samples. The bulk of the conversion
// goes through the quality resampler; any residual length mismatch is
// fitted by linear interpolation.
func ToLength(x []float64, n int) ([]float64, error) {
	if n <= 0 {
		return []float64{}, nil
	}
	if len(x) == n || len(x) == 0 {
		return Linear(x, n), nil
	}

	out, err := Rate(x, float64(len(x)), float64(n))
	if err != nil {
		return Linear(x, n), nil
	}
	return Linear(out, n), nil
}
