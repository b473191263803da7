package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonavox/sonavox/presets"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage stored parameter presets",
	RunE:  runPresetsList,
}

var presetsSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current parameter flags as a named preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsSave,
}

func init() {
	presetsCmd.AddCommand(presetsSaveCmd)
	rootCmd.AddCommand(presetsCmd)
}

func presetStore() (*presets.Store, error) {
	if presetFile == "" {
		return nil, fmt.Errorf("--presets is required")
	}
	return presets.NewStore(presetFile), nil
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	store, err := presetStore()
	if err != nil {
		return err
	}

	names, err := store.Names()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no presets")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runPresetsSave(cmd *cobra.Command, args []string) error {
	store, err := presetStore()
	if err != nil {
		return err
	}

	params, err := resolveParameters()
	if err != nil {
		return err
	}
	return store.Put(args[0], params.Map())
}
