package enhance

import (
	"math"
	"testing"

	"github.com/sonavox/sonavox/dsp/random"
)

func TestBreathiness_SilenceStaysSilent(t *testing.T) {
	b := NewBreathinessSynthesizer(random.NewSource(1))
	zeros := make([]float64, 2000)

	out, err := b.AddBreathiness(zeros, 24000, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	// The noise is gated by the signal's own envelope, so silence gets no
	// breath.
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d: got %g, want 0", i, v)
		}
	}
}

func TestBreathiness_ZeroAmountIsIdentity(t *testing.T) {
	b := NewBreathinessSynthesizer(random.NewSource(2))
	signal := generateSine(440, 24000, 2000)

	out, err := b.AddBreathiness(signal, 24000, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range signal {
		if out[i] != signal[i] {
			t.Fatalf("sample %d: got %g, want %g", i, out[i], signal[i])
		}
	}
}

func TestBreathiness_AddsBoundedNoise(t *testing.T) {
	b := NewBreathinessSynthesizer(random.NewSource(3))
	signal := generateSine(440, 24000, 24000)

	out, err := b.AddBreathiness(signal, 24000, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(signal) {
		t.Fatalf("length: got %d, want %d", len(out), len(signal))
	}

	changed := false
	for i := range signal {
		diff := math.Abs(out[i] - signal[i])
		if diff > 0 {
			changed = true
		}
		// Envelope <= 1 and the noise is tiny, so the additive term stays
		// far below the signal level.
		if diff > 0.1 {
			t.Fatalf("sample %d moved by %g", i, diff)
		}
	}
	if !changed {
		t.Error("full breathiness left the signal untouched")
	}
}

func TestBreathiness_InvalidSampleRate(t *testing.T) {
	b := NewBreathinessSynthesizer(random.NewSource(4))
	signal := generateSine(440, 24000, 1000)

	if _, err := b.AddBreathiness(signal, 0, 0.5); err == nil {
		t.Error("zero sample rate: expected error")
	}
	// The low-pass cutoff must sit below Nyquist.
	if _, err := b.AddBreathiness(signal, 3000, 0.5); err == nil {
		t.Error("sample rate below twice the cutoff: expected error")
	}
}

func TestBreathiness_EmptySignal(t *testing.T) {
	b := NewBreathinessSynthesizer(random.NewSource(5))
	out, err := b.AddBreathiness(nil, 24000, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("empty signal: got %d samples", len(out))
	}
}
