package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var speakersCmd = &cobra.Command{
	Use:   "speakers",
	Short: "List the synthesis engine's voice styles",
	RunE:  runSpeakers,
}

func init() {
	rootCmd.AddCommand(speakersCmd)
}

func runSpeakers(cmd *cobra.Command, args []string) error {
	client := newEngineClient()

	version, err := client.Version(cmd.Context())
	if err != nil {
		return fmt.Errorf("connect to engine: %w", err)
	}

	speakers, err := client.Speakers(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Engine version %s, %d voice styles:\n", version, len(speakers))
	for _, sp := range speakers {
		fmt.Fprintf(cmd.OutOrStdout(), "  %4d  %s\n", sp.ID, sp.Name)
	}
	return nil
}
