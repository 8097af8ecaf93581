package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/oshokin/reqrelay/internal/constants"
)

// Builder validates request descriptors and builds transport requests.
type Builder struct {
	// parser parses the descriptor URL.
	parser URLParser
	// sink receives non-fatal diagnostics such as skipped headers.
	sink DiagnosticSink
}

// NewBuilder creates a Builder. Nil collaborators are replaced with
// StandardURLParser and DiscardSink.
func NewBuilder(parser URLParser, sink DiagnosticSink) *Builder {
	if parser == nil {
		parser = NewStandardURLParser()
	}

	if sink == nil {
		sink = DiscardSink{}
	}

	return &Builder{
		parser: parser,
		sink:   sink,
	}
}

// Build validates the descriptor and returns the request to dispatch.
// Rules are applied in order and the first failure is returned:
// URL syntax, URL scheme, method, then the body/content-type coupling.
// Unusable header pairs are skipped with a diagnostic and never fail the build.
func (b *Builder) Build(ctx context.Context, descriptor *RequestDescriptor) (*TransportRequest, error) {
	if descriptor == nil {
		return nil, fmt.Errorf("%w: nil request descriptor", ErrSerialization)
	}

	parsedURL, err := b.parser.Parse(descriptor.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}

	if !isHostScheme(parsedURL.Scheme) {
		return nil, fmt.Errorf("%w: got scheme %q", ErrUnsupportedScheme, parsedURL.Scheme)
	}

	if !IsSupportedMethod(descriptor.Method) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, descriptor.Method)
	}

	b.sink.Log(ctx, fmt.Sprintf("Request method: %s, URL: %s", descriptor.Method, descriptor.URL))

	headers := b.buildHeaders(ctx, descriptor.Headers)

	if err = checkBody(descriptor.Method, descriptor.Body, headers); err != nil {
		return nil, err
	}

	return &TransportRequest{
		Method:  descriptor.Method,
		URL:     parsedURL,
		Headers: headers,
	}, nil
}

// buildHeaders keeps the pairs a transport can carry, in their original order.
func (b *Builder) buildHeaders(ctx context.Context, pairs []Header) []Header {
	headers := make([]Header, 0, len(pairs))

	for i, pair := range pairs {
		switch {
		case pair.Name == "" || pair.Value == "":
			b.sink.Log(ctx, fmt.Sprintf("Skipping header #%d: empty name or value", i+1))
		case !httpguts.ValidHeaderFieldName(pair.Name):
			b.sink.Log(ctx, fmt.Sprintf("Warning: Failed to add header %s: invalid header name", pair.Name))
		case !httpguts.ValidHeaderFieldValue(pair.Value):
			b.sink.Log(ctx, fmt.Sprintf("Warning: Failed to add header %s: invalid header value", pair.Name))
		default:
			headers = append(headers, pair)
		}
	}

	return headers
}

// checkBody applies the body/content-type coupling rules to a non-empty body.
func checkBody(method, body string, headers []Header) error {
	if body == "" {
		return nil
	}

	contentType, found := lookupHeader(headers, constants.HeaderContentType)

	switch {
	case found && strings.Contains(contentType, constants.MIMETypeJSON):
		var document any
		if err := json.Unmarshal([]byte(body), &document); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSONBody, err)
		}
	case !found && requiresContentType(method):
		return ErrMissingContentType
	}

	return nil
}

// lookupHeader finds a header case-insensitively.
// Repeated headers are combined with ", " the way a header list is read back.
func lookupHeader(headers []Header, name string) (string, bool) {
	var values []string

	for _, header := range headers {
		if strings.EqualFold(header.Name, name) {
			values = append(values, header.Value)
		}
	}

	if len(values) == 0 {
		return "", false
	}

	return strings.Join(values, ", "), true
}
