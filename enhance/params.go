package enhance

import "github.com/sonavox/sonavox/dsp/common"

// Recognized parameter map keys.
const (
	KeySpectrumEnhance = "spectrum_enhance"
	KeyVoiceQuality    = "voice_quality"
	KeyFluctuation     = "fluctuation"
	KeyBreathiness     = "breathiness"
	KeyPitchVariation  = "pitch_variation"
	KeySpeedVariation  = "speed_variation"
)

// stageThreshold is the minimum parameter value at which the optional
// breathiness and prosody stages run at all.
const stageThreshold = 0.05

// Parameters controls the strength of each enhancement stage. All values
// are normalized to [0, 1]. A Parameters value is constructed once per
// Enhance call and never shared between calls.
type Parameters struct {
	// SpectrumEnhance scales the high-frequency emphasis ramp.
	SpectrumEnhance float64 `json:"spectrum_enhance" yaml:"spectrum_enhance"`

	// VoiceQuality scales the formant-band emphasis.
	VoiceQuality float64 `json:"voice_quality" yaml:"voice_quality"`

	// Fluctuation scales the multiplicative amplitude micro-variation.
	Fluctuation float64 `json:"fluctuation" yaml:"fluctuation"`

	// Breathiness scales the envelope-modulated breath noise mix.
	Breathiness float64 `json:"breathiness" yaml:"breathiness"`

	// PitchVariation scales the per-segment random pitch perturbation.
	PitchVariation float64 `json:"pitch_variation" yaml:"pitch_variation"`

	// SpeedVariation scales the per-segment random time-scale perturbation.
	SpeedVariation float64 `json:"speed_variation" yaml:"speed_variation"`
}

// DefaultParameters returns the canonical defaults.
func DefaultParameters() Parameters {
	return Parameters{
		SpectrumEnhance: 0.5,
		VoiceQuality:    0.5,
		Fluctuation:     0.3,
		Breathiness:     0.2,
		PitchVariation:  0.4,
		SpeedVariation:  0.3,
	}
}

// ParametersFromMap builds Parameters from a flat key/value map, the form
// presets and external callers use. Missing keys take their defaults,
// unknown keys are ignored, and values are clamped to [0, 1].
func ParametersFromMap(values map[string]float64) Parameters {
	p := DefaultParameters()
	if values == nil {
		return p
	}

	if v, ok := values[KeySpectrumEnhance]; ok {
		p.SpectrumEnhance = common.Clamp(v, 0, 1)
	}
	if v, ok := values[KeyVoiceQuality]; ok {
		p.VoiceQuality = common.Clamp(v, 0, 1)
	}
	if v, ok := values[KeyFluctuation]; ok {
		p.Fluctuation = common.Clamp(v, 0, 1)
	}
	if v, ok := values[KeyBreathiness]; ok {
		p.Breathiness = common.Clamp(v, 0, 1)
	}
	if v, ok := values[KeyPitchVariation]; ok {
		p.PitchVariation = common.Clamp(v, 0, 1)
	}
	if v, ok := values[KeySpeedVariation]; ok {
		p.SpeedVariation = common.Clamp(v, 0, 1)
	}
	return p
}

// Map returns the flat key/value form of the parameters.
func (p Parameters) Map() map[string]float64 {
	return map[string]float64{
		KeySpectrumEnhance: p.SpectrumEnhance,
		KeyVoiceQuality:    p.VoiceQuality,
		KeyFluctuation:     p.Fluctuation,
		KeyBreathiness:     p.Breathiness,
		KeyPitchVariation:  p.PitchVariation,
		KeySpeedVariation:  p.SpeedVariation,
	}
}
