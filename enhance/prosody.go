package enhance

import (
	"math"

	"github.com/sonavox/sonavox/dsp/common"
	"github.com/sonavox/sonavox/dsp/random"
	"github.com/sonavox/sonavox/dsp/spectral"
	"github.com/sonavox/sonavox/dsp/windowing"
	"github.com/sonavox/sonavox/logging"
	"github.com/sonavox/sonavox/resample"
)

const (
	// pitchSegmentMax caps the pitch-variation segment length in samples.
	pitchSegmentMax = 2048

	// pitchSegmentMin is the floor below which pitch variation is skipped
	// entirely.
	pitchSegmentMin = 256

	// pitchShiftScale converts the normalized variation amount into the
	// standard deviation of the per-segment shift, in semitones.
	pitchShiftScale = 0.1

	// pitchShiftEpsilon skips shifts too small to hear, saving the
	// resampling cost of a near-identity transform.
	pitchShiftEpsilon = 0.01

	// speedSegmentSeconds is the speed-variation segment duration.
	speedSegmentSeconds = 0.2

	// speedFactorScale converts the normalized variation amount into the
	// standard deviation of the per-segment speed factor.
	speedFactorScale = 0.1

	// speedMinSamples is the minimum input length for speed variation.
	speedMinSamples = 1000
)

// ProsodyVariator perturbs pitch and local speaking rate per segment,
// breaking up the metronomic regularity of synthesized speech. Both
// sub-modes are windowed overlap-add processes; pitch variation keeps
// the timeline fixed while speed variation warps it and resamples back.
type ProsodyVariator struct {
	rnd    random.Source
	stft   *spectral.STFT
	logger logging.Logger
}

// NewProsodyVariator creates a prosody variator drawing randomness from
// the given source.
func NewProsodyVariator(rnd random.Source) *ProsodyVariator {
	return &ProsodyVariator{
		rnd:    rnd,
		stft:   spectral.NewSTFT(),
		logger: logging.WithFields(logging.Fields{"component": "prosody_variator"}),
	}
}

// VaryPitch applies a small random pitch shift to each segment, drawn
// from N(0, amount*0.1) semitones. The output length always equals the
// input length. Inputs too short to segment are returned unchanged.
func (p *ProsodyVariator) VaryPitch(signal []float64, sampleRate int, amount float64) []float64 {
	segmentLen := len(signal) / 4
	if segmentLen > pitchSegmentMax {
		segmentLen = pitchSegmentMax
	}
	if segmentLen < pitchSegmentMin {
		return signal
	}

	segmenter, err := windowing.NewSegmenter(segmentLen, segmentLen/2)
	if err != nil {
		p.logger.Error(err, "pitch segmenter construction failed")
		return signal
	}

	return segmenter.Process(signal, func(offset int, segment []float64) ([]float64, error) {
		shift := p.rnd.NormFloat64() * amount * pitchShiftScale
		if math.Abs(shift) < pitchShiftEpsilon {
			return segment, nil
		}

		shifted, err := p.stft.PitchShift(segment, sampleRate, shift)
		if err != nil {
			p.logger.Debug("pitch shift failed, keeping segment", logging.Fields{
				"offset": offset,
				"shift":  shift,
				"error":  err.Error(),
			})
			return nil, err
		}
		return shifted, nil
	})
}

// VarySpeed locally stretches and compresses the timeline: each segment
// is written at a cursor that advances by hop*factor, with factor drawn
// from 1 + N(0, amount*0.1) clamped to [0.8, 1.2]. The variable-length
// result is resampled back to the input length so downstream stages see
// a fixed duration.
func (p *ProsodyVariator) VarySpeed(signal []float64, sampleRate int, amount float64) []float64 {
	if len(signal) < speedMinSamples {
		return signal
	}

	segmentLen := int(speedSegmentSeconds * float64(sampleRate))
	if segmentLen < 2 || len(signal) <= segmentLen {
		return signal
	}
	hopLen := segmentLen * 3 / 4

	window := windowing.NewHann(segmentLen, true)
	coeffs := window.Coefficients()

	// Sized generously: slow segments can push the cursor past the
	// input length.
	capacity := len(signal) + int(float64(len(signal))*amount*0.5)
	acc := windowing.NewOverlapAccumulator(capacity)

	outputPos := 0
	for i := 0; i < len(signal)-segmentLen; i += hopLen {
		segment := signal[i : i+segmentLen]

		factor := 1.0 + p.rnd.NormFloat64()*amount*speedFactorScale
		factor = common.Clamp(factor, 0.8, 1.2)

		if acc.Fits(outputPos, segmentLen) {
			acc.Add(outputPos, segment, coeffs)
		}

		outputPos += int(float64(hopLen) * factor)
	}

	warped := acc.FinalizeTrimmed()
	if len(warped) == 0 {
		return signal
	}

	out, err := resample.ToLength(warped, len(signal))
	if err != nil {
		p.logger.Error(err, "speed variation resample failed")
		return signal
	}
	return out
}
