package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/reqrelay/internal/app"
)

const flagRaw = "raw"

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var sendCmd = &cobra.Command{
	Use:   "send [flags] {url}",
	Short: "Validate a request, send it and print the response descriptor.",
	Long: `Validate a request, send it through the configured backend and print the
response descriptor as JSON.

Examples:
  reqrelay send https://example.com
  reqrelay send -X PUT -H "Content-Type: application/json" -d '{"a":1}' https://example.com/items
  reqrelay send -f request.json
  cat request.json | reqrelay send -f -`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prepareConfig(cmd)

		raw, _ := cmd.Flags().GetBool(flagRaw)

		app.ExecuteSendCommand(cmd.Context(), appConfig, app.SendOptions{
			Input:  readRequestInput(cmd.Flags(), args),
			Raw:    raw,
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	addRequestFlags(sendCmd.Flags())

	sendCmd.Flags().Bool(flagRaw, false, "print only the response body.")

	rootCmd.AddCommand(sendCmd)
}
