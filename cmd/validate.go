package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/reqrelay/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var validateCmd = &cobra.Command{
	Use:   "validate [flags] {url}",
	Short: "Check a request against the validation rules without sending it.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prepareConfig(cmd)

		app.ExecuteValidateCommand(cmd.Context(), readRequestInput(cmd.Flags(), args), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	addRequestFlags(validateCmd.Flags())

	rootCmd.AddCommand(validateCmd)
}
