package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/reqrelay/internal/config"
	"github.com/oshokin/reqrelay/internal/logger"
	"github.com/oshokin/reqrelay/internal/relay"
	transport_http "github.com/oshokin/reqrelay/internal/transport/http"
	"github.com/oshokin/reqrelay/internal/utils"
)

const (
	// defaultMethod is used when no method is given and there is no body.
	defaultMethod = relay.MethodGet

	// defaultMethodWithBody is used when no method is given but a body is.
	defaultMethodWithBody = relay.MethodPost

	// jsonIndent indents printed response descriptors.
	jsonIndent = "  "
)

// ErrNoRequest indicates that neither a URL nor a descriptor file was given.
var ErrNoRequest = errors.New("either a URL or a request file is required")

// RequestInput is a request as given on the command line.
// File, when set, holds a descriptor in the JSON request shape and overrides every other field.
type RequestInput struct {
	// Method is the HTTP method, passed to the relay as is.
	Method string
	// URL is the target URL.
	URL string
	// Headers are "Name: Value" lines.
	Headers []string
	// Data is the request body.
	Data string
	// File is a descriptor file, or "-" for standard input.
	File string
}

// Descriptor builds the request descriptor.
func (in RequestInput) Descriptor(stdin io.Reader) (*relay.RequestDescriptor, error) {
	if in.File != "" {
		payload, err := utils.ReadInput(in.File, stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read request file: %w", err)
		}

		return relay.DecodeRequest(payload)
	}

	if in.URL == "" {
		return nil, ErrNoRequest
	}

	headers := make([]relay.Header, 0, len(in.Headers))

	for _, line := range in.Headers {
		name, value, err := utils.SplitHeaderLine(line)
		if err != nil {
			return nil, err
		}

		headers = append(headers, relay.Header{Name: name, Value: value})
	}

	method := in.Method
	if method == "" {
		method = defaultMethod
		if in.Data != "" {
			method = defaultMethodWithBody
		}
	}

	return &relay.RequestDescriptor{
		Method:  method,
		URL:     in.URL,
		Headers: headers,
		Body:    in.Data,
	}, nil
}

// SendOptions configures Send.
type SendOptions struct {
	// Input is the request to relay.
	Input RequestInput
	// Raw prints only the response body.
	Raw bool
	// Stdin feeds "-" request files.
	Stdin io.Reader
	// Stdout receives the response.
	Stdout io.Writer
	// Stderr receives the spinner; nil disables it.
	Stderr io.Writer
}

// ExecuteSendCommand relays one request and prints the response.
func ExecuteSendCommand(ctx context.Context, cfg *config.Config, opts SendOptions) {
	if err := Send(ctx, cfg, opts); err != nil {
		logger.Fatalf(ctx, "Request failed: %v", err)
	}
}

// Send relays one request through the configured backend and prints the response.
func Send(ctx context.Context, cfg *config.Config, opts SendOptions) error {
	descriptor, err := opts.Input.Descriptor(opts.Stdin)
	if err != nil {
		return err
	}

	logDescriptor(ctx, descriptor)

	// Validation runs before the backend starts, which may launch a browser.
	if err = relay.NewRelay(relay.Options{Sink: relay.DiscardSink{}}).Validate(ctx, descriptor); err != nil {
		return err
	}

	transport, err := transport_http.NewTransport(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize transport: %w", err)
	}

	if transport != nil {
		defer closeTransport(ctx, transport)
	}

	r := relay.NewRelay(relay.Options{Transport: transport})

	ctx, cancel := withTimeout(ctx, cfg)
	defer cancel()

	stopSpinner := startSpinner(opts.Stderr, fmt.Sprintf("%s %s", descriptor.Method, descriptor.URL))

	response, err := r.Send(ctx, descriptor)

	stopSpinner()

	if err != nil {
		return err
	}

	logger.Infof(ctx, "%d %s, %s in %.2fms",
		response.Status, response.StatusText, humanize.Bytes(uint64(len(response.Body))), response.ElapsedMs)

	return writeResponse(opts.Stdout, response, opts.Raw)
}

// logDescriptor dumps the request descriptor at debug level.
func logDescriptor(ctx context.Context, descriptor *relay.RequestDescriptor) {
	if !logger.IsDebugLevel() {
		return
	}

	payload, err := relay.EncodeRequest(descriptor)
	if err != nil {
		logger.Debugf(ctx, "Failed to dump request descriptor: %v", err)

		return
	}

	logger.DebugKV(ctx, "Request descriptor", "descriptor", string(payload))
}

func writeResponse(w io.Writer, response *relay.ResponseDescriptor, raw bool) error {
	if raw {
		_, err := io.WriteString(w, response.Body)

		return err
	}

	payload, err := relay.EncodeResponse(response)
	if err != nil {
		return err
	}

	var indented bytes.Buffer
	if err = json.Indent(&indented, payload, "", jsonIndent); err != nil {
		return fmt.Errorf("%w: %v", relay.ErrSerialization, err)
	}

	indented.WriteByte('\n')

	_, err = indented.WriteTo(w)

	return err
}

// withTimeout applies the configured caller-level timeout, if any.
func withTimeout(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.ParsedRequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, cfg.ParsedRequestTimeout)
}

func closeTransport(ctx context.Context, transport io.Closer) {
	if err := transport.Close(); err != nil {
		logger.Warnf(ctx, "Failed to close transport: %v", err)
	}
}
