package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/reqrelay/internal/relay"
)

func newRequest(t *testing.T, method, rawURL string, headers ...relay.Header) *relay.TransportRequest {
	t.Helper()

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)

	return &relay.TransportRequest{Method: method, URL: parsed, Headers: headers}
}

// rawResponseServer answers every request with the given raw HTTP response bytes.
func rawResponseServer(t *testing.T, raw string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hijacker, ok := w.(http.Hijacker)
		require.True(t, ok)

		conn, buf, err := hijacker.Hijack()
		require.NoError(t, err)

		defer conn.Close() //nolint:errcheck // Test cleanup, error is not critical.

		_, _ = buf.WriteString(raw)
		_ = buf.Flush()
	}))
	t.Cleanup(server.Close)

	return server
}

// TestNetHTTPTransport_Dispatch tests what goes on the wire and what comes back.
func TestNetHTTPTransport_Dispatch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Empty(t, body)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, []string{"a", "b"}, r.Header.Values("X-Multi"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "reqrelay/test", r.Header.Get("User-Agent"))
		assert.Equal(t, "virtual.example", r.Host)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	transport := NewNetHTTPTransport(NetHTTPOptions{UserAgent: "reqrelay/test"})
	defer transport.Close() //nolint:errcheck // Test cleanup, error is not critical.

	response, err := transport.Dispatch(context.Background(), newRequest(t, http.MethodPost, server.URL+"/items",
		relay.Header{Name: "X-Multi", Value: "a"},
		relay.Header{Name: "Content-Type", Value: "application/json"},
		relay.Header{Name: "X-Multi", Value: "b"},
		relay.Header{Name: "Host", Value: "virtual.example"},
	))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, response.StatusCode())
	assert.Equal(t, "Created", response.StatusText())

	text, err := response.Text(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, text)
}

// TestNetHTTPTransport_StatusText tests that the reason phrase is taken from the status line.
func TestNetHTTPTransport_StatusText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		raw          string
		expectedCode int
		expectedText string
	}{
		{
			name:         "custom reason",
			raw:          "HTTP/1.1 299 Mostly Fine\r\nContent-Length: 0\r\nConnection: close\r\n\r\n",
			expectedCode: 299,
			expectedText: "Mostly Fine",
		},
		{
			name:         "no reason",
			raw:          "HTTP/1.1 200\r\nContent-Length: 0\r\nConnection: close\r\n\r\n",
			expectedCode: 200,
			expectedText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := rawResponseServer(t, tt.raw)

			response, err := NewNetHTTPTransport(NetHTTPOptions{}).
				Dispatch(context.Background(), newRequest(t, http.MethodGet, server.URL))
			require.NoError(t, err)

			assert.Equal(t, tt.expectedCode, response.StatusCode())
			assert.Equal(t, tt.expectedText, response.StatusText())

			_, err = response.Text(context.Background())
			require.NoError(t, err)
		})
	}
}

// TestNetHTTPTransport_Text_NotUTF8 tests that binary bodies are reported as not text.
func TestNetHTTPTransport_Text_NotUTF8(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte{0xff, 0xfe, 0x00, 0x80})
	}))
	defer server.Close()

	response, err := NewNetHTTPTransport(NetHTTPOptions{}).
		Dispatch(context.Background(), newRequest(t, http.MethodGet, server.URL))
	require.NoError(t, err)

	_, err = response.Text(context.Background())
	require.ErrorIs(t, err, relay.ErrBodyNotText)
}

// TestNetHTTPTransport_Dispatch_ConnectionRefused tests that dial failures surface as errors.
func TestNetHTTPTransport_Dispatch_ConnectionRefused(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	response, err := NewNetHTTPTransport(NetHTTPOptions{}).
		Dispatch(context.Background(), newRequest(t, http.MethodGet, "http://"+address))
	require.Error(t, err)
	assert.Nil(t, response)
}

// TestNetHTTPTransport_Dispatch_Canceled tests that a canceled context aborts the dispatch.
func TestNetHTTPTransport_Dispatch_Canceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewNetHTTPTransport(NetHTTPOptions{}).Dispatch(ctx, newRequest(t, http.MethodGet, server.URL))
	require.ErrorIs(t, err, context.Canceled)
}

// TestNetHTTPTransport_WithRelay tests a relayed call through the real client.
func TestNetHTTPTransport_WithRelay(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Ignored", "yes")
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	r := relay.NewRelay(relay.Options{
		Transport: NewNetHTTPTransport(NetHTTPOptions{}),
		Sink:      relay.DiscardSink{},
	})

	response, err := r.Send(context.Background(), &relay.RequestDescriptor{
		Method: http.MethodGet,
		URL:    server.URL,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, response.Status)
	assert.Equal(t, "OK", response.StatusText)
	assert.Equal(t, "hello", response.Body)
	assert.Empty(t, response.Headers)
	assert.GreaterOrEqual(t, response.ElapsedMs, 0.0)

	_, err = r.Send(context.Background(), &relay.RequestDescriptor{Method: http.MethodGet, URL: "http://127.0.0.1:1"})
	require.ErrorIs(t, err, relay.ErrNetwork)
}
