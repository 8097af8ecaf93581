package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/reqrelay/internal/app"
)

const flagListen = "listen"

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the relay over HTTP.",
	Long: `Serve the relay over HTTP until interrupted.

Endpoints:
  POST /api/v1/send      request descriptor in, response descriptor out
  POST /api/v1/validate  204 when the request is valid
  GET  /healthz          liveness and backend information`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if flag := cmd.Flags().Lookup(flagListen); flag != nil && flag.Changed {
			appConfig.ListenAddress, _ = cmd.Flags().GetString(flagListen)
		}

		prepareConfig(cmd)

		app.ExecuteServeCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	serveCmd.Flags().StringP(
		flagListen,
		"l",
		"",
		"address to listen on, for example: 127.0.0.1:8080.")

	rootCmd.AddCommand(serveCmd)
}
