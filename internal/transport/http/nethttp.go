package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/oshokin/reqrelay/internal/logger"
	"github.com/oshokin/reqrelay/internal/relay"
	"github.com/oshokin/reqrelay/internal/utils"
)

// hostHeader is the header net/http carries in Request.Host instead of Request.Header.
const hostHeader = "Host"

// NetHTTPOptions configures a NetHTTPTransport.
type NetHTTPOptions struct {
	// UserAgent is injected when the relayed request has no User-Agent header.
	UserAgent string
	// MaxLogLength limits debug dumps; zero uses the config default.
	MaxLogLength uint64
	// Base is the innermost round tripper; nil uses a clone of http.DefaultTransport.
	Base http.RoundTripper
}

// NetHTTPTransport dispatches relay requests with a net/http client.
// The chain is UserAgentInjector -> LogTransport -> Base.
type NetHTTPTransport struct {
	client *http.Client
}

// NewNetHTTPTransport creates a NetHTTPTransport.
func NewNetHTTPTransport(opts NetHTTPOptions) *NetHTTPTransport {
	base := opts.Base
	if base == nil {
		defaultTransport, _ := http.DefaultTransport.(*http.Transport)

		cloned := defaultTransport.Clone()
		cloned.MaxIdleConns = DefaultMaxIdleConns
		cloned.IdleConnTimeout = DefaultIdleConnTimeout

		base = cloned
	}

	roundTripper := NewUserAgentInjector(
		NewLogTransport(base, opts.MaxLogLength),
		utils.NewSimpleUserAgentProvider(opts.UserAgent),
	)

	return &NetHTTPTransport{
		client: &http.Client{Transport: roundTripper},
	}
}

// Dispatch sends the request without a body and returns once the status line and headers arrive.
// Headers are added in order, so repeated names produce repeated header lines.
func (t *NetHTTPTransport) Dispatch(ctx context.Context, request *relay.TransportRequest) (relay.TransportResponse, error) {
	req, err := http.NewRequestWithContext(ctx, request.Method, request.URL.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for _, header := range request.Headers {
		if strings.EqualFold(header.Name, hostHeader) {
			req.Host = header.Value

			continue
		}

		req.Header.Add(header.Name, header.Value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}

	logger.Debugf(ctx, "Response status: %s", resp.Status)

	return &netHTTPResponse{resp: resp}, nil
}

// Close releases idle connections.
func (t *NetHTTPTransport) Close() error {
	t.client.CloseIdleConnections()

	return nil
}

// netHTTPResponse adapts *http.Response to relay.TransportResponse.
type netHTTPResponse struct {
	resp *http.Response
}

func (r *netHTTPResponse) StatusCode() int {
	return r.resp.StatusCode
}

// StatusText returns the reason phrase exactly as the server sent it, which may be empty.
func (r *netHTTPResponse) StatusText() string {
	return strings.TrimSpace(strings.TrimPrefix(r.resp.Status, strconv.Itoa(r.resp.StatusCode)))
}

// Text reads the whole body. A body that is not valid UTF-8 is reported as relay.ErrBodyNotText.
func (r *netHTTPResponse) Text(_ context.Context) (string, error) {
	defer r.resp.Body.Close() //nolint:errcheck // Error on close is not critical here.

	data, err := io.ReadAll(r.resp.Body)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", relay.ErrBodyNotText
	}

	return string(data), nil
}
