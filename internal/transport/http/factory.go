package http

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/reqrelay/internal/config"
	"github.com/oshokin/reqrelay/internal/logger"
	"github.com/oshokin/reqrelay/internal/relay"
)

// Transport is a relay transport that holds resources until closed.
type Transport interface {
	relay.Transport
	io.Closer
}

// NewTransport builds the backend selected in the configuration.
// The "none" backend yields a nil Transport: the relay then reports relay.ErrHostUnavailable.
func NewTransport(ctx context.Context, cfg *config.Config) (Transport, error) {
	switch cfg.Backend {
	case config.BackendNetHTTP:
		logger.Debug(ctx, "Using net/http transport")

		return NewNetHTTPTransport(NetHTTPOptions{
			UserAgent:    cfg.UserAgent,
			MaxLogLength: cfg.ParsedMaxLogLength,
		}), nil
	case config.BackendBrowser:
		logger.Debug(ctx, "Using browser transport")

		transport, err := NewBrowserTransport(ctx, BrowserOptions{
			Headless: cfg.BrowserHeadless,
			Bin:      cfg.BrowserBin,
			Origin:   cfg.BrowserOrigin,
		})
		if err != nil {
			return nil, err
		}

		return transport, nil
	case config.BackendNone:
		logger.Warn(ctx, "No transport configured, every dispatch will fail")

		return nil, nil //nolint:nilnil // A missing host is a valid configuration.
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownBackend, cfg.Backend)
	}
}
