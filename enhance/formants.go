package enhance

import (
	"github.com/sonavox/sonavox/dsp/filters"
	"github.com/sonavox/sonavox/logging"
)

// formantBand is one vowel formant center frequency in Hz.
type formantBand struct {
	vowel string
	freq  float64
}

// formantTable lists the first two formant center frequencies of the five
// Japanese vowels. The vowel labels are informative; every band is
// processed the same way.
var formantTable = []formantBand{
	{"a", 800}, {"a", 1200},
	{"i", 300}, {"i", 2500},
	{"u", 300}, {"u", 900},
	{"e", 500}, {"e", 1800},
	{"o", 500}, {"o", 1000},
}

// formantHalfWidth is the half-width of each emphasis band in Hz.
const formantHalfWidth = 50.0

// FormantShaper emphasizes vowel timbre by band-pass filtering the input
// around each formant frequency and blending the filtered bands back in.
//
// Every band filters the pristine input signal, not the progressively
// enhanced one, so band contributions are independent and their order
// does not matter.
type FormantShaper struct {
	logger logging.Logger
}

// NewFormantShaper creates a new formant shaper.
func NewFormantShaper() *FormantShaper {
	return &FormantShaper{
		logger: logging.WithFields(logging.Fields{"component": "formant_shaper"}),
	}
}

// EnhanceVoiceQuality adds level*0.2 of each formant band to the signal.
// A band whose filter cannot be constructed (degenerate frequency range
// at low sample rates) is dropped; the remaining bands still apply.
func (f *FormantShaper) EnhanceVoiceQuality(signal []float64, sampleRate int, level float64) []float64 {
	out := make([]float64, len(signal))
	copy(out, signal)

	if len(signal) == 0 || sampleRate <= 0 {
		return out
	}

	nyquist := float64(sampleRate) / 2.0
	blend := level * 0.2

	for _, band := range formantTable {
		lowFreq := band.freq - formantHalfWidth
		if lowFreq < 20.0 {
			lowFreq = 20.0
		}
		highFreq := band.freq + formantHalfWidth
		if highFreq > nyquist-1.0 {
			highFreq = nyquist - 1.0
		}

		filter, err := filters.NewBandpass(sampleRate, lowFreq, highFreq)
		if err != nil {
			f.logger.Warn("skipping formant band", logging.Fields{
				"vowel": band.vowel,
				"freq":  band.freq,
				"error": err.Error(),
			})
			continue
		}

		filtered := filter.ProcessBuffer(signal)
		for i := range out {
			out[i] += filtered[i] * blend
		}
	}

	return out
}
