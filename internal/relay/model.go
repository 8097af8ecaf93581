package relay

import (
	"net/url"
	"slices"
)

const (
	// NoStatusText replaces an empty status text reported by the transport.
	NoStatusText = "No Status Text"
	// NoResponseBody replaces a response body the host cannot turn into text.
	NoResponseBody = "No response body"
)

// HTTP methods accepted by the builder. Matching is case-sensitive.
const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodPatch   = "PATCH"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
)

// URL schemes accepted by the builder.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// Header is a single name/value pair. Order and duplicates are preserved.
type Header struct {
	// Name is the header field name.
	Name string
	// Value is the header field value.
	Value string
}

// RequestDescriptor is the generic description of an HTTP request.
type RequestDescriptor struct {
	// Method is the HTTP method token.
	Method string
	// URL is the absolute target URL.
	URL string
	// Headers are the request headers in caller order.
	Headers []Header
	// Body is the request body; it may be empty.
	Body string
}

// ResponseDescriptor is the generic description of an HTTP response.
type ResponseDescriptor struct {
	// Status is the HTTP status code reported by the transport.
	Status int
	// StatusText is the reason phrase, or NoStatusText.
	StatusText string
	// Headers is always empty: response headers are not captured.
	Headers []Header
	// Body is the response body as text, or NoResponseBody.
	Body string
	// ElapsedMs is the time between dispatch and response arrival in milliseconds.
	ElapsedMs float64
}

// TransportRequest is a validated request ready for dispatch.
// It carries no body: the validated body does not reach the wire.
type TransportRequest struct {
	// Method is one of the accepted HTTP methods.
	Method string
	// URL is the parsed absolute http or https URL.
	URL *url.URL
	// Headers are the accepted headers in caller order.
	Headers []Header
}

// Methods returns the accepted HTTP methods.
func Methods() []string {
	return []string{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodHead, MethodOptions}
}

// IsSupportedMethod reports whether method is accepted, using an exact match.
func IsSupportedMethod(method string) bool {
	return slices.Contains(Methods(), method)
}

// requiresContentType reports whether a non-empty body must be typed for this method.
func requiresContentType(method string) bool {
	return method == MethodPost || method == MethodPut || method == MethodPatch
}
