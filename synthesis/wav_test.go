package synthesis

import (
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/sonavox/sonavox/audio"
)

func TestWAV_EncodeDecodeRoundTrip(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*float64(i)/50.0)
	}
	w := audio.New(samples, 24000)

	data, err := EncodeWAV(w)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := DecodeWAV(data)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.SampleRate != 24000 {
		t.Errorf("sample rate: got %d, want 24000", decoded.SampleRate)
	}
	if decoded.Len() != w.Len() {
		t.Fatalf("length: got %d, want %d", decoded.Len(), w.Len())
	}
	for i := range samples {
		if math.Abs(decoded.Samples[i]-samples[i]) > 1e-3 {
			t.Fatalf("sample %d: got %g, want %g", i, decoded.Samples[i], samples[i])
		}
	}
}

func TestWAV_EncodeClipsOutOfRange(t *testing.T) {
	w := audio.New([]float64{2.0, -2.0}, 24000)

	data, err := EncodeWAV(w)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeWAV(data)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.Samples[0] < 0.99 || decoded.Samples[0] > 1.0 {
		t.Errorf("positive clip: got %g", decoded.Samples[0])
	}
	if decoded.Samples[1] > -0.99 || decoded.Samples[1] < -1.0 {
		t.Errorf("negative clip: got %g", decoded.Samples[1])
	}
}

func TestWAV_EncodeInvalidWaveform(t *testing.T) {
	if _, err := EncodeWAV(nil); err == nil {
		t.Error("nil waveform: expected error")
	}
	if _, err := EncodeWAV(audio.New([]float64{0}, 0)); err == nil {
		t.Error("zero sample rate: expected error")
	}
}

func TestWAV_DecodeRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short", []byte("RIFF")},
		{"wrong magic", []byte("FORMxxxxAIFF0000")},
		{"header only", []byte{'R', 'I', 'F', 'F', 4, 0, 0, 0, 'W', 'A', 'V', 'E'}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeWAV(tc.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// encodeStereoWAV writes a 16-bit stereo PCM stream from interleaved frames.
func encodeStereoWAV(t *testing.T, interleaved []int, sampleRate int) []byte {
	t.Helper()

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           interleaved,
		SourceBitDepth: 16,
	}

	var out seekBuffer
	encoder := wav.NewEncoder(&out, sampleRate, 16, 2, 1)
	if err := encoder.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatal(err)
	}
	return out.data
}

func TestWAV_DecodeDownmixesStereo(t *testing.T) {
	// Frames: (16384, 0) and (16384, -16384).
	data := encodeStereoWAV(t, []int{16384, 0, 16384, -16384}, 44100)

	w, err := DecodeWAV(data)
	if err != nil {
		t.Fatal(err)
	}

	if w.SampleRate != 44100 {
		t.Errorf("sample rate: got %d, want 44100", w.SampleRate)
	}
	if w.Len() != 2 {
		t.Fatalf("length: got %d, want 2", w.Len())
	}
	if math.Abs(w.Samples[0]-0.25) > 1e-4 {
		t.Errorf("frame 0: got %g, want 0.25", w.Samples[0])
	}
	if math.Abs(w.Samples[1]) > 1e-4 {
		t.Errorf("frame 1: got %g, want 0", w.Samples[1])
	}
}

func TestResampled(t *testing.T) {
	samples := make([]float64, 24000)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 24000)
	}
	w := audio.New(samples, 24000)

	same, err := Resampled(w, 24000)
	if err != nil {
		t.Fatal(err)
	}
	if same != w {
		t.Error("matching rate should return the input")
	}

	up, err := Resampled(w, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if up.SampleRate != 48000 {
		t.Errorf("sample rate: got %d, want 48000", up.SampleRate)
	}
	if up.Len() != 48000 {
		t.Errorf("length: got %d, want 48000", up.Len())
	}

	if _, err := Resampled(nil, 48000); err == nil {
		t.Error("nil waveform: expected error")
	}
	if _, err := Resampled(w, 0); err == nil {
		t.Error("zero target rate: expected error")
	}
}
