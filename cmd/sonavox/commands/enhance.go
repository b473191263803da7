package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sonavox/sonavox/audio"
	"github.com/sonavox/sonavox/dsp/random"
	"github.com/sonavox/sonavox/enhance"
	"github.com/sonavox/sonavox/synthesis"
)

var (
	enhanceInput  string
	enhanceOutput string
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Enhance an existing WAV file",
	Long: `Read a WAV file, run it through the naturalization pipeline, and
write the result as 16-bit mono PCM.

16-bit integer and 32-bit float input is accepted; multichannel audio
is downmixed to mono before processing.`,
	RunE: runEnhance,
}

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceInput, "input", "i", "", "input WAV file (required)")
	enhanceCmd.Flags().StringVarP(&enhanceOutput, "output", "o", "", "output WAV file (required)")
	enhanceCmd.MarkFlagRequired("input")
	enhanceCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, args []string) error {
	params, err := resolveParameters()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(enhanceInput)
	if err != nil {
		return fmt.Errorf("read %q: %w", enhanceInput, err)
	}

	w, err := synthesis.DecodeWAV(data)
	if err != nil {
		return fmt.Errorf("decode %q: %w", enhanceInput, err)
	}

	pipeline := enhance.NewPipeline(newRandomSource())
	enhanced := pipeline.Enhance(w, params)

	return writeWAV(enhanceOutput, enhanced)
}

// newRandomSource honors the --seed flag; zero means non-deterministic.
func newRandomSource() random.Source {
	if seed != 0 {
		return random.NewSource(seed)
	}
	return random.NewTimeSource()
}

func writeWAV(path string, w *audio.Waveform) error {
	data, err := synthesis.EncodeWAV(w)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
