package spectral

import (
	"math"
	"testing"
)

func TestFFT_RoundTrip(t *testing.T) {
	f := NewFFT()
	signal := generateSine(440, 24000, 256)

	recovered := f.ComputeInverseReal(f.Compute(signal))
	if len(recovered) != len(signal) {
		t.Fatalf("length: got %d, want %d", len(recovered), len(signal))
	}
	if diff := maxAbsDiff(recovered, signal); diff > 1e-9 {
		t.Errorf("round trip error: %g", diff)
	}
}

func TestFFT_SineBinPlacement(t *testing.T) {
	f := NewFFT()
	const n = 256

	// Exactly 8 cycles in the frame lands all energy in bin 8.
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 8 * float64(i) / n)
	}

	spectrum := f.Compute(signal)
	mag8 := math.Hypot(real(spectrum[8]), imag(spectrum[8]))
	if math.Abs(mag8-float64(n)/2) > 1e-6 {
		t.Errorf("bin 8 magnitude: got %g, want %g", mag8, float64(n)/2)
	}

	for k := 1; k < n/2; k++ {
		if k == 8 {
			continue
		}
		if mag := math.Hypot(real(spectrum[k]), imag(spectrum[k])); mag > 1e-6 {
			t.Errorf("bin %d magnitude: got %g, want ~0", k, mag)
		}
	}
}

func TestFFT_EmptyInput(t *testing.T) {
	f := NewFFT()

	if out := f.Compute(nil); len(out) != 0 {
		t.Errorf("Compute(nil): got %d values", len(out))
	}
	if out := f.ComputeInverse(nil); len(out) != 0 {
		t.Errorf("ComputeInverse(nil): got %d values", len(out))
	}
	if out := f.ComputeInverseReal(nil); len(out) != 0 {
		t.Errorf("ComputeInverseReal(nil): got %d values", len(out))
	}
}
