package relay

//go:generate $MOCKGEN -source=collaborators.go -destination=mocks/collaborators_mock.go

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oshokin/reqrelay/internal/logger"
)

// URLParser turns raw URL text into a parsed absolute URL.
type URLParser interface {
	// Parse returns the parsed URL or an error when the text is not a valid absolute URL.
	Parse(raw string) (*url.URL, error)
}

// Transport is the host networking primitive.
type Transport interface {
	// Dispatch sends the request and returns once the response status is known.
	Dispatch(ctx context.Context, request *TransportRequest) (TransportResponse, error)
}

// TransportResponse is a response whose body has not been read yet.
type TransportResponse interface {
	// StatusCode returns the HTTP status code.
	StatusCode() int
	// StatusText returns the reason phrase, possibly empty.
	StatusText() string
	// Text reads the whole body as text and releases it.
	// It returns ErrBodyNotText when the body cannot be represented as text.
	Text(ctx context.Context) (string, error)
}

// Clock reports the current time in milliseconds.
type Clock interface {
	// Now returns milliseconds from an arbitrary but fixed origin.
	Now() float64
}

// DiagnosticSink receives write-only diagnostic messages.
type DiagnosticSink interface {
	// Log records a message. Failures are ignored.
	Log(ctx context.Context, message string)
}

// Errors reported by StandardURLParser, wrapped by the builder into ErrMalformedURL.
var (
	errRelativeURL = errors.New("relative URL without a base")
	errEmptyHost   = errors.New("empty host")
	errInvalidPort = errors.New("invalid port number")
)

// StandardURLParser parses URLs with net/url and rejects relative references.
type StandardURLParser struct{}

// NewStandardURLParser creates a StandardURLParser.
func NewStandardURLParser() *StandardURLParser {
	return &StandardURLParser{}
}

// Parse parses raw as an absolute URL.
// Leading and trailing spaces and control characters are ignored.
// http and https URLs must name a host, and "https:host" is read as "https://host".
// A port, when present, must fit in 16 bits.
func (p *StandardURLParser) Parse(raw string) (*url.URL, error) {
	raw = strings.TrimFunc(raw, isControlOrSpace)

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	if !parsed.IsAbs() {
		return nil, errRelativeURL
	}

	if isHostScheme(parsed.Scheme) && parsed.Host == "" {
		// The scheme may be written in any case but its length is fixed.
		rest := strings.TrimLeft(raw[len(parsed.Scheme)+1:], `/\`)

		if parsed, err = url.Parse(parsed.Scheme + "://" + rest); err != nil {
			return nil, err
		}

		if parsed.Host == "" {
			return nil, errEmptyHost
		}
	}

	if port := parsed.Port(); port != "" {
		if _, err = strconv.ParseUint(port, 10, 16); err != nil {
			return nil, fmt.Errorf("%w: %s", errInvalidPort, port)
		}
	}

	return parsed, nil
}

func isHostScheme(scheme string) bool {
	return scheme == SchemeHTTP || scheme == SchemeHTTPS
}

func isControlOrSpace(r rune) bool {
	return r <= ' '
}

// MonotonicClock measures milliseconds on the monotonic clock since its creation.
type MonotonicClock struct {
	origin time.Time
}

// NewMonotonicClock creates a MonotonicClock anchored at the current instant.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

// Now returns the milliseconds elapsed since the clock was created.
func (c *MonotonicClock) Now() float64 {
	return float64(time.Since(c.origin)) / float64(time.Millisecond)
}

// LoggerSink writes diagnostics to the context logger at info level.
type LoggerSink struct{}

// NewLoggerSink creates a LoggerSink.
func NewLoggerSink() *LoggerSink {
	return &LoggerSink{}
}

// Log writes the message to the logger carried by ctx.
func (s *LoggerSink) Log(ctx context.Context, message string) {
	logger.Info(ctx, message)
}

// DiscardSink drops every diagnostic.
type DiscardSink struct{}

// Log does nothing.
func (DiscardSink) Log(context.Context, string) {}
