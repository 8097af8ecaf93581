package http

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/reqrelay/internal/config"
)

// TestNewTransport tests backend selection.
func TestNewTransport(t *testing.T) {
	t.Parallel()

	t.Run("nethttp", func(t *testing.T) {
		t.Parallel()

		transport, err := NewTransport(context.Background(), &config.Config{
			Backend:            config.BackendNetHTTP,
			UserAgent:          "reqrelay/test",
			ParsedMaxLogLength: 1024,
		})
		require.NoError(t, err)
		assert.IsType(t, &NetHTTPTransport{}, transport)
		assert.NoError(t, transport.Close())
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		transport, err := NewTransport(context.Background(), &config.Config{Backend: config.BackendNone})
		require.NoError(t, err)
		assert.Nil(t, transport)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		_, err := NewTransport(context.Background(), &config.Config{Backend: "carrier-pigeon"})
		require.ErrorIs(t, err, config.ErrUnknownBackend)
	})
}
