package spectral

import (
	"math"
	"testing"
)

func generateSine(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

func maxAbsDiff(a, b []float64) float64 {
	maxDiff := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

func TestSTFT_AnalyzeValidation(t *testing.T) {
	s := NewSTFT()

	if _, err := s.Analyze(nil, 64, 16); err == nil {
		t.Error("empty signal: expected error")
	}
	if _, err := s.Analyze(make([]float64, 100), 0, 16); err == nil {
		t.Error("zero window: expected error")
	}
	if _, err := s.Analyze(make([]float64, 100), 64, 0); err == nil {
		t.Error("zero hop: expected error")
	}
	if _, err := s.Analyze(make([]float64, 32), 64, 16); err == nil {
		t.Error("window exceeding signal: expected error")
	}
}

func TestSTFT_Geometry(t *testing.T) {
	s := NewSTFT()
	signal := generateSine(440, 24000, 1000)

	spec, err := s.Analyze(signal, 256, 64)
	if err != nil {
		t.Fatal(err)
	}

	if spec.WindowSize != 256 || spec.HopSize != 64 {
		t.Errorf("geometry: got %d/%d, want 256/64", spec.WindowSize, spec.HopSize)
	}
	if spec.FreqBins() != 129 {
		t.Errorf("FreqBins: got %d, want 129", spec.FreqBins())
	}
	if spec.SignalLen != 1000 {
		t.Errorf("SignalLen: got %d, want 1000", spec.SignalLen)
	}
	for i, frame := range spec.Frames {
		if len(frame) != 256 {
			t.Fatalf("frame %d: %d bins, want 256", i, len(frame))
		}
	}
}

func TestSTFT_RoundTripIdentity(t *testing.T) {
	s := NewSTFT()
	signal := generateSine(440, 24000, 2000)

	spec, err := s.Analyze(signal, 256, 64)
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Synthesize(spec)
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != len(signal) {
		t.Fatalf("length: got %d, want %d", len(out), len(signal))
	}
	if diff := maxAbsDiff(out, signal); diff > 1e-6 {
		t.Errorf("round trip error: %g", diff)
	}
}

func TestSTFT_UnitGainIsIdentity(t *testing.T) {
	s := NewSTFT()
	signal := generateSine(880, 24000, 2000)

	spec, err := s.Analyze(signal, 256, 64)
	if err != nil {
		t.Fatal(err)
	}

	gain := make([]float64, spec.FreqBins())
	for k := range gain {
		gain[k] = 1.0
	}
	if err := spec.ScaleMagnitudes(gain); err != nil {
		t.Fatal(err)
	}

	out, err := s.Synthesize(spec)
	if err != nil {
		t.Fatal(err)
	}
	if diff := maxAbsDiff(out, signal); diff > 1e-6 {
		t.Errorf("unit gain round trip error: %g", diff)
	}
}

func TestSpectrogram_ScaleMagnitudesValidation(t *testing.T) {
	s := NewSTFT()
	spec, err := s.Analyze(generateSine(440, 24000, 1000), 256, 64)
	if err != nil {
		t.Fatal(err)
	}

	if err := spec.ScaleMagnitudes(make([]float64, 10)); err == nil {
		t.Error("wrong gain length: expected error")
	}
}

func TestSpectrogram_ScaleBoostsHighBand(t *testing.T) {
	s := NewSTFT()
	const sampleRate = 24000

	// 6 kHz sits in the upper half of the spectrum at this rate.
	signal := generateSine(6000, sampleRate, 4000)

	spec, err := s.Analyze(signal, 256, 64)
	if err != nil {
		t.Fatal(err)
	}

	gain := make([]float64, spec.FreqBins())
	for k := range gain {
		gain[k] = 2.0
	}
	if err := spec.ScaleMagnitudes(gain); err != nil {
		t.Fatal(err)
	}

	out, err := s.Synthesize(spec)
	if err != nil {
		t.Fatal(err)
	}

	inRMS := rms(signal[500 : len(signal)-500])
	outRMS := rms(out[500 : len(out)-500])
	if math.Abs(outRMS/inRMS-2.0) > 0.05 {
		t.Errorf("uniform 2x gain: output/input RMS = %g, want ~2", outRMS/inRMS)
	}
}

func rms(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func TestMagnitude(t *testing.T) {
	frame := []complex128{complex(3, 4), complex(0, 1), complex(-2, 0), complex(0, -1)}
	mag := Magnitude(frame)

	want := []float64{5, 1, 2}
	if len(mag) != len(want) {
		t.Fatalf("length: got %d, want %d", len(mag), len(want))
	}
	for i := range want {
		if math.Abs(mag[i]-want[i]) > 1e-12 {
			t.Errorf("bin %d: got %g, want %g", i, mag[i], want[i])
		}
	}
}

func TestReflectPad(t *testing.T) {
	got := reflectPad([]float64{1, 2, 3, 4}, 2)
	want := []float64{3, 2, 1, 2, 3, 4, 3, 2}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: got %g, want %g", i, got[i], want[i])
		}
	}

	got = reflectPad([]float64{7}, 3)
	for i, v := range got {
		if v != 7 {
			t.Errorf("constant pad sample %d: got %g, want 7", i, v)
		}
	}
}
