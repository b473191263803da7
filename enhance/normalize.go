package enhance

import "github.com/sonavox/sonavox/dsp/common"

// defaultTargetLevel is the peak level the pipeline normalizes to.
const defaultTargetLevel = 0.9

// Normalizer peak-normalizes a signal to a target level.
type Normalizer struct {
	targetLevel float64
}

// NewNormalizer creates a normalizer with the given target peak level in
// (0, 1]. Out-of-range targets fall back to the default 0.9.
func NewNormalizer(targetLevel float64) *Normalizer {
	if targetLevel <= 0 || targetLevel > 1 {
		targetLevel = defaultTargetLevel
	}
	return &Normalizer{targetLevel: targetLevel}
}

// Normalize scales the signal so its peak absolute amplitude equals the
// target level. An all-zero signal is returned unchanged; silence is not
// an error. The operation is idempotent.
func (n *Normalizer) Normalize(signal []float64) []float64 {
	peak := common.Peak(signal)
	if peak <= 0 {
		return signal
	}

	scale := n.targetLevel / peak
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = v * scale
	}
	return out
}
