package enhance

import (
	"errors"
	"math"
	"testing"
)

func identityModel() SegmentModel {
	return SegmentModelFunc(func(segment []float64) ([]float64, error) {
		out := make([]float64, len(segment))
		copy(out, segment)
		return out, nil
	})
}

func TestNewSegmentwiseEnhancer_Validation(t *testing.T) {
	if _, err := NewSegmentwiseEnhancer(nil, 1024, 0.25); err == nil {
		t.Error("nil model: expected error")
	}
	if _, err := NewSegmentwiseEnhancer(identityModel(), 0, 0.25); err == nil {
		t.Error("zero segment size: expected error")
	}
	if _, err := NewSegmentwiseEnhancer(identityModel(), 1024, 1.0); err == nil {
		t.Error("overlap 1.0: expected error")
	}
	if _, err := NewSegmentwiseEnhancer(identityModel(), 1024, -0.1); err == nil {
		t.Error("negative overlap: expected error")
	}
}

func TestSegmentwise_IdentityModelReconstructsInterior(t *testing.T) {
	e, err := NewSegmentwiseEnhancer(identityModel(), 64, 0.25)
	if err != nil {
		t.Fatal(err)
	}

	signal := generateSine(440, 24000, 1000)
	out, err := e.Enhance(signal)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(signal) {
		t.Fatalf("length: got %d, want %d", len(out), len(signal))
	}

	// Weighted overlap-add of unmodified segments is exact wherever the
	// window weight is nonzero; only the very first samples sit under the
	// rising edge of the first window.
	for i := 64; i < len(signal); i++ {
		if math.Abs(out[i]-signal[i]) > 1e-9 {
			t.Fatalf("sample %d: got %g, want %g", i, out[i], signal[i])
		}
	}
}

func TestSegmentwise_GainModelScalesInterior(t *testing.T) {
	double := SegmentModelFunc(func(segment []float64) ([]float64, error) {
		out := make([]float64, len(segment))
		for i, v := range segment {
			out[i] = 2 * v
		}
		return out, nil
	})

	e, err := NewSegmentwiseEnhancer(double, 64, 0.25)
	if err != nil {
		t.Fatal(err)
	}

	signal := generateSine(440, 24000, 1000)
	out, err := e.Enhance(signal)
	if err != nil {
		t.Fatal(err)
	}

	for i := 64; i < len(signal); i++ {
		if math.Abs(out[i]-2*signal[i]) > 1e-9 {
			t.Fatalf("sample %d: got %g, want %g", i, out[i], 2*signal[i])
		}
	}
}

func TestSegmentwise_ModelErrorAborts(t *testing.T) {
	failing := SegmentModelFunc(func(segment []float64) ([]float64, error) {
		return nil, errors.New("model unavailable")
	})

	e, err := NewSegmentwiseEnhancer(failing, 64, 0.25)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Enhance(generateSine(440, 24000, 1000)); err == nil {
		t.Error("failing model: expected error")
	}
}

func TestSegmentwise_WrongLengthOutputRejected(t *testing.T) {
	truncating := SegmentModelFunc(func(segment []float64) ([]float64, error) {
		return segment[:len(segment)-1], nil
	})

	e, err := NewSegmentwiseEnhancer(truncating, 64, 0.25)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Enhance(generateSine(440, 24000, 1000)); err == nil {
		t.Error("wrong-length model output: expected error")
	}
}

func TestSegmentwise_EmptySignal(t *testing.T) {
	e, err := DefaultSegmentwiseEnhancer(identityModel())
	if err != nil {
		t.Fatal(err)
	}

	out, err := e.Enhance(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("empty signal: got %d samples", len(out))
	}
}
