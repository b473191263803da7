package spectral

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/sonavox/sonavox/dsp/common"
	"github.com/sonavox/sonavox/resample"
)

// TimeStretch changes the duration of a signal by the given rate without
// altering pitch, using a phase vocoder. rate > 1 shortens the signal,
// rate < 1 lengthens it. The output length is round(len(signal)/rate).
func (s *STFT) TimeStretch(signal []float64, rate float64, windowSize, hopSize int) ([]float64, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("stretch rate must be positive, got %g", rate)
	}

	spec, err := s.Analyze(signal, windowSize, hopSize)
	if err != nil {
		return nil, err
	}

	bins := spec.FreqBins()
	numFrames := spec.NumFrames()

	// Expected per-hop phase advance for each bin.
	phaseAdvance := make([]float64, bins)
	for k := range phaseAdvance {
		phaseAdvance[k] = 2.0 * math.Pi * float64(hopSize) * float64(k) / float64(windowSize)
	}

	phaseAcc := make([]float64, bins)
	for k := 0; k < bins; k++ {
		phaseAcc[k] = cmplx.Phase(spec.Frames[0][k])
	}

	zero := make([]complex128, windowSize)

	var outFrames [][]complex128
	for t := 0.0; t < float64(numFrames); t += rate {
		f := int(t)
		alpha := t - float64(f)

		cur := spec.Frames[f]
		next := zero
		if f+1 < numFrames {
			next = spec.Frames[f+1]
		}

		frame := make([]complex128, windowSize)
		for k := 0; k < bins; k++ {
			mag := (1.0-alpha)*cmplx.Abs(cur[k]) + alpha*cmplx.Abs(next[k])
			frame[k] = cmplx.Rect(mag, phaseAcc[k])

			// Accumulate true phase advance for the next synthesis frame.
			dphi := cmplx.Phase(next[k]) - cmplx.Phase(cur[k]) - phaseAdvance[k]
			dphi -= 2.0 * math.Pi * math.Round(dphi/(2.0*math.Pi))
			phaseAcc[k] += phaseAdvance[k] + dphi
		}
		// Mirror bins so the inverse transform is real-valued.
		for k := bins; k < windowSize; k++ {
			frame[k] = cmplx.Conj(frame[windowSize-k])
		}
		outFrames = append(outFrames, frame)
	}

	stretched := &Spectrogram{
		Frames:     outFrames,
		WindowSize: windowSize,
		HopSize:    hopSize,
		SignalLen:  int(math.Round(float64(len(signal)) / rate)),
	}
	return s.Synthesize(stretched)
}

// PitchShift shifts the pitch of a signal by the given number of
// semitones while preserving its duration: a phase-vocoder time-stretch
// followed by resampling back to the original length.
func (s *STFT) PitchShift(signal []float64, sampleRate int, semitones float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	windowSize := common.PrevPowerOfTwo(len(signal))
	if windowSize > 512 {
		windowSize = 512
	}
	if windowSize < 32 {
		return nil, fmt.Errorf("signal too short for pitch shifting (%d samples)", len(signal))
	}

	rate := math.Pow(2.0, -semitones/12.0)

	stretched, err := s.TimeStretch(signal, rate, windowSize, windowSize/4)
	if err != nil {
		return nil, err
	}

	return resample.Linear(stretched, len(signal)), nil
}
