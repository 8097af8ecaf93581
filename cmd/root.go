package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/reqrelay/internal/config"
	"github.com/oshokin/reqrelay/internal/logger"
)

// Flag names shared by several commands.
const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagBackend  = "backend"
	flagTimeout  = "timeout"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "reqrelay",
		Short: "Validate HTTP requests described as JSON and relay them.",
		Long: `reqrelay takes a request descriptor (method, URL, headers, body), validates it,
sends it through the configured backend and returns a normalized response descriptor
(status, status text, body, elapsed milliseconds).

Backends:
- nethttp: the Go HTTP client
- browser: fetch() inside a headless Chrome page
- none:    no transport, every send fails after validation

Request bodies are validated but never sent, and response headers are never captured.`,
		PersistentPreRun: initConfig,
		SilenceUsage:     true,
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	cobra.CheckErr(err)
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	persistentFlags := rootCmd.PersistentFlags()

	persistentFlags.StringVarP(
		&configFilenameFromFlag,
		flagConfig,
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	persistentFlags.String(
		flagLogLevel,
		"",
		"log level: debug, info, warn, error.")

	persistentFlags.StringP(
		flagBackend,
		"b",
		"",
		fmt.Sprintf("transport backend: %s.", strings.Join(config.Backends(), ", ")))

	persistentFlags.StringP(
		flagTimeout,
		"t",
		"",
		"caller-side timeout of a relayed call, for example: 10s, 1m, 0 to disable.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}
}

// prepareConfig applies command-line overrides, validates the configuration
// and sets the log level.
func prepareConfig(cmd *cobra.Command) {
	if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup(flagLogLevel); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString(flagLogLevel)
	}

	if flag := flags.Lookup(flagBackend); flag != nil && flag.Changed {
		cfg.Backend, _ = flags.GetString(flagBackend)
	}

	if flag := flags.Lookup(flagTimeout); flag != nil && flag.Changed {
		cfg.RequestTimeout, _ = flags.GetString(flagTimeout)
	}

	return config.ValidateConfig(cfg)
}
