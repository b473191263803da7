package enhance

import (
	"math"
	"testing"
)

func TestSpectrum_ZeroLevelIsIdentity(t *testing.T) {
	e := NewSpectralEnhancer()
	signal := generateSine(440, 24000, 4096)

	out, err := e.EnhanceSpectrum(signal, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(signal) {
		t.Fatalf("length: got %d, want %d", len(out), len(signal))
	}
	for i := range signal {
		if math.Abs(out[i]-signal[i]) > 1e-6 {
			t.Fatalf("sample %d: got %g, want %g", i, out[i], signal[i])
		}
	}
}

func TestSpectrum_BoostsHighsMoreThanLows(t *testing.T) {
	e := NewSpectralEnhancer()
	const sampleRate = 24000
	const n = 24000

	low := generateSine(200, sampleRate, n)
	high := generateSine(10000, sampleRate, n)

	lowOut, err := e.EnhanceSpectrum(low, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	highOut, err := e.EnhanceSpectrum(high, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	lowGain := rmsOf(lowOut[2000:n-2000]) / rmsOf(low[2000:n-2000])
	highGain := rmsOf(highOut[2000:n-2000]) / rmsOf(high[2000:n-2000])

	if highGain <= lowGain {
		t.Errorf("gain ramp inverted: low %g, high %g", lowGain, highGain)
	}
	// The ramp runs 1.0 at DC to 2.0 at Nyquist at full level.
	if lowGain < 0.95 || lowGain > 1.2 {
		t.Errorf("low-band gain: got %g, want ~1", lowGain)
	}
	if highGain < 1.5 || highGain > 2.05 {
		t.Errorf("high-band gain: got %g, want ~1.8", highGain)
	}
}

func TestSpectrum_PreservesLengthForAwkwardSizes(t *testing.T) {
	e := NewSpectralEnhancer()

	for _, n := range []int{300, 1000, 2047, 2048, 5000} {
		signal := generateSine(440, 24000, n)
		out, err := e.EnhanceSpectrum(signal, 0.5)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(out) != n {
			t.Errorf("n=%d: got length %d", n, len(out))
		}
	}
}

func TestSpectrum_TooShort(t *testing.T) {
	e := NewSpectralEnhancer()

	if _, err := e.EnhanceSpectrum(make([]float64, 5), 0.5); err == nil {
		t.Error("5 samples: expected error")
	}

	out, err := e.EnhanceSpectrum(nil, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("empty signal: got %d samples", len(out))
	}
}
