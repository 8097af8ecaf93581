package app

import (
	"context"

	"github.com/oshokin/reqrelay/internal/config"
	"github.com/oshokin/reqrelay/internal/logger"
)

// ExecuteConfigInitCommand writes a configuration file filled with defaults.
func ExecuteConfigInitCommand(ctx context.Context, filename string, overwrite bool) {
	written, err := config.WriteDefaultConfig(filename, overwrite)
	if err != nil {
		logger.Fatalf(ctx, "Failed to write configuration: %v", err)
	}

	logger.Infof(ctx, "Configuration written to %s", written)
}
