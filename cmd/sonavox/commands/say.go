package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonavox/sonavox/enhance"
	"github.com/sonavox/sonavox/synthesis"
)

var (
	sayText    string
	saySpeaker int
	sayOutput  string
	sayRaw     bool
)

var sayCmd = &cobra.Command{
	Use:   "say",
	Short: "Synthesize text via the engine and enhance the result",
	Long: `Send text to the synthesis engine, run the rendered audio through
the naturalization pipeline, and write it as a WAV file.

The engine must be running and reachable (see --host and --port).`,
	RunE: runSay,
}

var (
	engineHost string
	enginePort int
)

func init() {
	sayCmd.Flags().StringVarP(&sayText, "text", "t", "", "text to synthesize (required)")
	sayCmd.Flags().IntVarP(&saySpeaker, "speaker", "s", 1, "speaker style ID")
	sayCmd.Flags().StringVarP(&sayOutput, "output", "o", "", "output WAV file (required)")
	sayCmd.Flags().BoolVar(&sayRaw, "raw", false, "skip enhancement, write the engine output as-is")
	sayCmd.MarkFlagRequired("text")
	sayCmd.MarkFlagRequired("output")

	defaults := synthesis.DefaultClientConfig()
	rootCmd.PersistentFlags().StringVar(&engineHost, "host", defaults.Host, "synthesis engine host")
	rootCmd.PersistentFlags().IntVar(&enginePort, "port", defaults.Port, "synthesis engine port")

	rootCmd.AddCommand(sayCmd)
}

func newEngineClient() *synthesis.Client {
	config := synthesis.DefaultClientConfig()
	config.Host = engineHost
	config.Port = enginePort
	return synthesis.NewClient(config)
}

func runSay(cmd *cobra.Command, args []string) error {
	params, err := resolveParameters()
	if err != nil {
		return err
	}

	client := newEngineClient()
	w, err := client.TextToSpeech(cmd.Context(), sayText, saySpeaker)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	if !sayRaw {
		pipeline := enhance.NewPipeline(newRandomSource())
		w = pipeline.Enhance(w, params)
	}

	return writeWAV(sayOutput, w)
}
