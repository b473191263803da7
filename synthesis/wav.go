package synthesis

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/sonavox/sonavox/audio"
	"github.com/sonavox/sonavox/dsp/common"
	"github.com/sonavox/sonavox/resample"
)

// DecodeWAV parses a RIFF/WAVE byte stream into a mono waveform. Integer PCM
// is normalized to [-1, 1] by its source bit depth; multichannel audio is
// downmixed by averaging.
func DecodeWAV(data []byte) (*audio.Waveform, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("wav: not a valid RIFF/WAVE stream")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: read PCM buffer: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid format")
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int(1) << (bitDepth - 1))

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}
	return audio.New(downmix(samples, buf.Format.NumChannels), buf.Format.SampleRate), nil
}

// downmix averages interleaved channels into mono.
func downmix(samples []float64, channels int) []float64 {
	if channels <= 1 {
		return samples
	}

	frames := len(samples) / channels
	mono := make([]float64, frames)
	for i := range frames {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += samples[i*channels+ch]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}

// EncodeWAV serializes a waveform as 16-bit mono PCM RIFF/WAVE. Samples
// outside [-1, 1] are clipped.
func EncodeWAV(w *audio.Waveform) ([]byte, error) {
	if w == nil || w.SampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid waveform")
	}

	data := make([]int, len(w.Samples))
	for i, s := range w.Samples {
		data[i] = int(common.Clamp(s, -1.0, 1.0) * 32767.0)
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  w.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	var out seekBuffer
	encoder := wav.NewEncoder(&out, w.SampleRate, 16, 1, 1)
	if err := encoder.Write(buf); err != nil {
		return nil, fmt.Errorf("wav: encode samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("wav: finalize stream: %w", err)
	}
	return out.data, nil
}

// seekBuffer is an in-memory io.WriteSeeker; the wav encoder seeks back to
// patch chunk sizes when closed.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("wav: invalid seek whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("wav: seek before start of buffer")
	}
	b.pos = int(pos)
	return pos, nil
}

// Resampled returns the waveform converted to the target sample rate, or
// the waveform itself when the rates already match.
func Resampled(w *audio.Waveform, targetRate int) (*audio.Waveform, error) {
	if w == nil {
		return nil, fmt.Errorf("wav: nil waveform")
	}
	if targetRate <= 0 {
		return nil, fmt.Errorf("wav: target rate must be positive, got %d", targetRate)
	}
	if w.SampleRate == targetRate {
		return w, nil
	}

	samples, err := resample.Rate(w.Samples, float64(w.SampleRate), float64(targetRate))
	if err != nil {
		return nil, fmt.Errorf("wav: resample %d -> %d: %w", w.SampleRate, targetRate, err)
	}
	return audio.New(samples, targetRate), nil
}
