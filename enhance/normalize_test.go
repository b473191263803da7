package enhance

import (
	"math"
	"testing"
)

func TestNormalizer_ScalesToTarget(t *testing.T) {
	n := NewNormalizer(0.9)

	out := n.Normalize([]float64{0.1, -0.3, 0.2})
	peak := 0.0
	for _, v := range out {
		if abs := math.Abs(v); abs > peak {
			peak = abs
		}
	}
	if math.Abs(peak-0.9) > 1e-12 {
		t.Errorf("peak: got %g, want 0.9", peak)
	}

	// Relative amplitudes survive scaling.
	if math.Abs(out[0]/out[2]-0.5) > 1e-12 {
		t.Errorf("sample ratio: got %g, want 0.5", out[0]/out[2])
	}
}

func TestNormalizer_SilenceUnchanged(t *testing.T) {
	n := NewNormalizer(0.9)

	zeros := make([]float64, 100)
	out := n.Normalize(zeros)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d: got %g, want 0", i, v)
		}
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := NewNormalizer(0.9)

	signal := []float64{0.4, -0.2, 0.05}
	once := n.Normalize(signal)
	twice := n.Normalize(once)

	for i := range once {
		if math.Abs(once[i]-twice[i]) > 1e-12 {
			t.Errorf("sample %d: %g != %g", i, once[i], twice[i])
		}
	}
}

func TestNewNormalizer_InvalidTargetFallsBack(t *testing.T) {
	for _, target := range []float64{0, -0.5, 1.5} {
		n := NewNormalizer(target)
		out := n.Normalize([]float64{0.5})
		if math.Abs(out[0]-defaultTargetLevel) > 1e-12 {
			t.Errorf("target %g: got peak %g, want %g", target, out[0], defaultTargetLevel)
		}
	}
}
