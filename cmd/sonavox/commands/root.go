// Package commands implements the sonavox CLI command tree.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonavox/sonavox/enhance"
	"github.com/sonavox/sonavox/logging"
	"github.com/sonavox/sonavox/presets"
)

var (
	// Global flags
	verbose    bool
	presetFile string
	presetName string
	seed       int64

	// Per-parameter overrides, applied on top of the preset (or the
	// defaults when no preset is named). Negative means "not set".
	flagSpectrum    float64
	flagVoice       float64
	flagFluctuation float64
	flagBreathiness float64
	flagPitch       float64
	flagSpeed       float64
)

var rootCmd = &cobra.Command{
	Use:   "sonavox",
	Short: "Naturalize synthesized speech",
	Long: `sonavox - enhancement pipeline for synthetic speech.

Takes audio from a VOICEVOX-compatible synthesis engine (or any WAV
file) and makes it sound less mechanical: spectral treble emphasis,
formant shaping, breath noise, amplitude fluctuation, and randomized
pitch/speed prosody, followed by peak normalization.

Examples:
  # Enhance a WAV file with default parameters
  sonavox enhance -i in.wav -o out.wav

  # Synthesize and enhance in one step
  sonavox say --text "こんにちは" --speaker 1 -o hello.wav

  # Use a stored preset, overriding one parameter
  sonavox enhance -i in.wav -o out.wav --presets voices.yaml \
      --preset soft --breathiness 0.4`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&presetFile, "presets", "", "path to a YAML preset file")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "preset name to load parameters from")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")

	rootCmd.PersistentFlags().Float64Var(&flagSpectrum, "spectrum", -1, "spectrum enhancement level [0,1]")
	rootCmd.PersistentFlags().Float64Var(&flagVoice, "voice-quality", -1, "formant emphasis level [0,1]")
	rootCmd.PersistentFlags().Float64Var(&flagFluctuation, "fluctuation", -1, "amplitude fluctuation rate [0,1]")
	rootCmd.PersistentFlags().Float64Var(&flagBreathiness, "breathiness", -1, "breath noise amount [0,1]")
	rootCmd.PersistentFlags().Float64Var(&flagPitch, "pitch-variation", -1, "pitch variation amount [0,1]")
	rootCmd.PersistentFlags().Float64Var(&flagSpeed, "speed-variation", -1, "speed variation amount [0,1]")

	cobra.OnInitialize(func() {
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		}
	})
}

// resolveParameters merges preset file, preset name, and flag overrides
// into one parameter set.
func resolveParameters() (enhance.Parameters, error) {
	params := enhance.DefaultParameters()

	if presetName != "" {
		if presetFile == "" {
			return params, fmt.Errorf("--preset requires --presets")
		}
		store := presets.NewStore(presetFile)
		loaded, err := store.Parameters(presetName)
		if err != nil {
			return params, err
		}
		params = loaded
	}

	if flagSpectrum >= 0 {
		params.SpectrumEnhance = flagSpectrum
	}
	if flagVoice >= 0 {
		params.VoiceQuality = flagVoice
	}
	if flagFluctuation >= 0 {
		params.Fluctuation = flagFluctuation
	}
	if flagBreathiness >= 0 {
		params.Breathiness = flagBreathiness
	}
	if flagPitch >= 0 {
		params.PitchVariation = flagPitch
	}
	if flagSpeed >= 0 {
		params.SpeedVariation = flagSpeed
	}
	return params, nil
}
