// Package enhance implements the audio enhancement pipeline that makes
// synthesized speech sound less mechanical: spectral treble emphasis,
// formant-based voice-quality shaping, breath noise, amplitude
// micro-fluctuation, randomized pitch and speed prosody, and final peak
// normalization.
//
// The pipeline is synchronous and pure apart from its injected random
// source; independent waveforms can be enhanced concurrently by giving
// each call its own Pipeline.
package enhance

import (
	"fmt"

	"github.com/sonavox/sonavox/audio"
	"github.com/sonavox/sonavox/dsp/random"
	"github.com/sonavox/sonavox/logging"
)

// minProcessingSamples is the input length below which all enhancement
// stages are skipped and only normalization applies.
const minProcessingSamples = 256

// Pipeline sequences the enhancement stages over a waveform according to
// a parameter set. Failures anywhere inside the pipeline are contained:
// the caller always gets back either the enhanced waveform or the
// original one, never a partially processed result.
type Pipeline struct {
	spectrum    *SpectralEnhancer
	formants    *FormantShaper
	breath      *BreathinessSynthesizer
	fluctuation *FluctuationModulator
	prosody     *ProsodyVariator
	normalizer  *Normalizer
	logger      logging.Logger
}

// NewPipeline creates a pipeline drawing randomness from the given
// source. A nil source gets a time-seeded one.
func NewPipeline(rnd random.Source) *Pipeline {
	if rnd == nil {
		rnd = random.NewTimeSource()
	}
	return &Pipeline{
		spectrum:    NewSpectralEnhancer(),
		formants:    NewFormantShaper(),
		breath:      NewBreathinessSynthesizer(rnd),
		fluctuation: NewFluctuationModulator(rnd),
		prosody:     NewProsodyVariator(rnd),
		normalizer:  NewNormalizer(defaultTargetLevel),
		logger:      logging.WithFields(logging.Fields{"component": "enhancement_pipeline"}),
	}
}

// Enhance runs the full pipeline and returns a waveform with the same
// sample rate and length as the input. On any internal failure the
// original waveform is returned unmodified.
func (p *Pipeline) Enhance(w *audio.Waveform, params Parameters) *audio.Waveform {
	if w == nil || len(w.Samples) == 0 {
		return w
	}

	out, err := p.enhance(w, params)
	if err != nil {
		p.logger.Error(err, "enhancement failed, returning original audio", logging.Fields{
			"samples":     len(w.Samples),
			"sample_rate": w.SampleRate,
		})
		return w
	}
	return out
}

// EnhanceMap is Enhance with the flat key/value parameter form used by
// preset stores and external callers.
func (p *Pipeline) EnhanceMap(w *audio.Waveform, values map[string]float64) *audio.Waveform {
	return p.Enhance(w, ParametersFromMap(values))
}

func (p *Pipeline) enhance(w *audio.Waveform, params Parameters) (out *audio.Waveform, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("enhancement panic: %v", r)
		}
	}()

	signal := make([]float64, len(w.Samples))
	copy(signal, w.Samples)

	if len(signal) < minProcessingSamples {
		p.logger.Warn("audio too short to enhance, normalizing only", logging.Fields{
			"samples": len(signal),
			"minimum": minProcessingSamples,
		})
		return audio.New(p.normalizer.Normalize(signal), w.SampleRate), nil
	}

	signal, err = p.spectrum.EnhanceSpectrum(signal, params.SpectrumEnhance)
	if err != nil {
		return nil, fmt.Errorf("spectrum enhancement: %w", err)
	}

	signal = p.formants.EnhanceVoiceQuality(signal, w.SampleRate, params.VoiceQuality)

	if params.Breathiness > stageThreshold {
		signal, err = p.breath.AddBreathiness(signal, w.SampleRate, params.Breathiness)
		if err != nil {
			return nil, fmt.Errorf("breathiness: %w", err)
		}
	}

	signal = p.fluctuation.AddFluctuation(signal, params.Fluctuation)

	if params.PitchVariation > stageThreshold {
		signal = p.prosody.VaryPitch(signal, w.SampleRate, params.PitchVariation)
	}

	if params.SpeedVariation > stageThreshold {
		signal = p.prosody.VarySpeed(signal, w.SampleRate, params.SpeedVariation)
	}

	return audio.New(p.normalizer.Normalize(signal), w.SampleRate), nil
}
