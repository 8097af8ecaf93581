package app

import (
	"context"
	"fmt"

	"github.com/oshokin/reqrelay/internal/config"
	"github.com/oshokin/reqrelay/internal/logger"
	"github.com/oshokin/reqrelay/internal/relay"
	"github.com/oshokin/reqrelay/internal/server"
	transport_http "github.com/oshokin/reqrelay/internal/transport/http"
)

// ExecuteServeCommand runs the HTTP API until ctx is done.
func ExecuteServeCommand(ctx context.Context, cfg *config.Config) {
	if err := Serve(ctx, cfg); err != nil {
		logger.Fatalf(ctx, "Server failed: %v", err)
	}
}

// Serve runs the HTTP API over the configured backend until ctx is done.
func Serve(ctx context.Context, cfg *config.Config) error {
	transport, err := transport_http.NewTransport(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize transport: %w", err)
	}

	if transport != nil {
		defer closeTransport(ctx, transport)
	}

	r := relay.NewRelay(relay.Options{Transport: transport})

	s := server.NewServer(server.Config{
		ListenAddress:  cfg.ListenAddress,
		RequestTimeout: cfg.ParsedRequestTimeout,
		Backend:        cfg.Backend,
	}, r)

	logger.Infof(ctx, "Relaying through the %s backend", cfg.Backend)

	return s.Run(ctx)
}
