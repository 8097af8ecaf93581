package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/oshokin/reqrelay/internal/config"
	"github.com/oshokin/reqrelay/internal/constants"
	"github.com/oshokin/reqrelay/internal/logger"
	"github.com/oshokin/reqrelay/internal/utils"
)

// LogTransport is an http.RoundTripper that dumps relayed exchanges at debug level.
// Dumps never include the request body, which is never sent.
type LogTransport struct {
	next         http.RoundTripper
	maxLogLength uint64
}

// ErrNilRequest indicates that the HTTP request is nil.
var ErrNilRequest = errors.New("request is nil")

// NewLogTransport wraps next with debug dumps truncated to maxLogLength bytes.
// A zero maxLogLength falls back to config.DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = config.DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip forwards the request and, at debug level, logs both sides of the exchange.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	var (
		ctx         = req.Context()
		target      = req.URL.Redacted()
		requestDump = t.dumpRequest(req)
		startTime   = time.Now()
	)

	resp, err := t.next.RoundTrip(req)

	elapsedMs := float64(time.Since(startTime).Microseconds()) / 1000

	if err != nil {
		logger.DebugKV(ctx, "Round trip failed",
			"method", req.Method,
			"url", target,
			"elapsed_ms", elapsedMs,
			"error", err)

		return nil, err
	}

	logger.DebugKV(ctx, "Round trip completed",
		"method", req.Method,
		"url", target,
		"status", resp.StatusCode,
		"elapsed_ms", elapsedMs,
		"request", requestDump,
		"response", t.dumpResponse(resp))

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	dump, err := httputil.DumpRequestOut(req, false)
	if err != nil {
		return err.Error()
	}

	return utils.Truncate(dump, t.maxLogLength)
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	// Only textual bodies are dumped.
	withBody := utils.IsTextContentType(resp.Header.Get(constants.HeaderContentType))

	dump, err := httputil.DumpResponse(resp, withBody)
	if err != nil {
		return err.Error()
	}

	return utils.Truncate(dump, t.maxLogLength)
}
