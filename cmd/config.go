package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/reqrelay/internal/app"
)

const flagForce = "force"

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands.",
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file filled with defaults.",
		Long: `Write a configuration file filled with defaults to the path given by --config,
or to the default path. An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		// The file being created must not be loaded first.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			force, _ := cmd.Flags().GetBool(flagForce)

			app.ExecuteConfigInitCommand(cmd.Context(), configFilenameFromFlag, force)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configInitCmd.Flags().Bool(flagForce, false, "overwrite an existing file.")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
