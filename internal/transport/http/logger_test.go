package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/reqrelay/internal/logger"
)

// observeDebugLogs switches the global logger to an in-memory debug logger for the test.
func observeDebugLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	previousLogger, previousLevel := logger.Logger(), logger.Level()

	core, logs := observer.New(zapcore.DebugLevel)
	logger.SetLogger(zap.New(core).Sugar())
	logger.SetLevel(zapcore.DebugLevel)

	t.Cleanup(func() {
		logger.SetLogger(previousLogger)
		logger.SetLevel(previousLevel)
	})

	return logs
}

// TestLogTransport_RoundTrip_Debug tests request and response dumps at debug level.
//
//nolint:paralleltest // Mutates the global logger.
func TestLogTransport_RoundTrip_Debug(t *testing.T) {
	logs := observeDebugLogs(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("0123456789abcdefghij"))
	}))
	defer server.Close()

	transport := NewLogTransport(http.DefaultTransport, 4096)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/dump", nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdefghij", string(body), "dumping must not consume the body")

	entries := logs.FilterMessage("Round trip completed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, server.URL+"/dump", fields["url"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Contains(t, fields["request"], "GET /dump HTTP/1.1")
	assert.Contains(t, fields["response"], "0123456789abcdefghij")
}

// TestLogTransport_RoundTrip_Failure tests that failed round trips are logged with a redacted URL.
//
//nolint:paralleltest // Mutates the global logger.
func TestLogTransport_RoundTrip_Failure(t *testing.T) {
	logs := observeDebugLogs(t)

	server := httptest.NewServer(http.NotFoundHandler())
	target := "http://user:secret@" + server.Listener.Addr().String() + "/"
	server.Close()

	req, err := http.NewRequest(http.MethodGet, target, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := NewLogTransport(http.DefaultTransport, 0).RoundTrip(req) //nolint:bodyclose // No response on error.
	require.Error(t, err)
	assert.Nil(t, resp)

	entries := logs.FilterMessage("Round trip failed").All()
	require.Len(t, entries, 1)

	url, ok := entries[0].ContextMap()["url"].(string)
	require.True(t, ok)
	assert.NotContains(t, url, "secret")
}

// TestLogTransport_RoundTrip_Truncated tests that dumps are cut at the configured length.
//
//nolint:paralleltest // Mutates the global logger.
func TestLogTransport_RoundTrip_Truncated(t *testing.T) {
	logs := observeDebugLogs(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("a long enough response body"))
	}))
	defer server.Close()

	transport := NewLogTransport(http.DefaultTransport, 8)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.

	entries := logs.FilterMessage("Round trip completed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "HTTP/1.1... [truncated]", fields["response"])
	assert.Equal(t, "GET / HT... [truncated]", fields["request"])
}

// TestLogTransport_RoundTrip_NilRequest tests that a nil request is rejected.
func TestLogTransport_RoundTrip_NilRequest(t *testing.T) {
	t.Parallel()

	resp, err := NewLogTransport(http.DefaultTransport, 0).RoundTrip(nil) //nolint:bodyclose // No response on error.
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}
