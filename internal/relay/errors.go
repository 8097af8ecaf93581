package relay

import "errors"

// Validation errors. They are returned before any network activity.
var (
	// ErrMalformedURL indicates that the URL is not a valid absolute URL.
	ErrMalformedURL = errors.New("invalid URL")
	// ErrUnsupportedScheme indicates that the URL scheme is neither http nor https.
	ErrUnsupportedScheme = errors.New("URL must start with http:// or https://")
	// ErrUnsupportedMethod indicates that the method is outside the accepted set.
	ErrUnsupportedMethod = errors.New("invalid HTTP method")
	// ErrInvalidJSONBody indicates that a body declared as JSON does not parse.
	ErrInvalidJSONBody = errors.New("invalid JSON body")
	// ErrMissingContentType indicates that a POST, PUT or PATCH body has no Content-Type header.
	ErrMissingContentType = errors.New("content type header is required when body is provided")
)

// Dispatch and boundary errors.
var (
	// ErrNetwork indicates that the transport failed to produce a response.
	ErrNetwork = errors.New("network error")
	// ErrBodyRead indicates that the response body could not be read.
	ErrBodyRead = errors.New("error reading response text")
	// ErrSerialization indicates a malformed inbound payload or an unencodable response.
	ErrSerialization = errors.New("serialization error")
	// ErrHostUnavailable indicates that no networking primitive is available.
	ErrHostUnavailable = errors.New("no HTTP transport available")
)

// ErrBodyNotText is returned by TransportResponse.Text when the body exists
// but cannot be represented as text. It is replaced with NoResponseBody.
var ErrBodyNotText = errors.New("response body is not text")

// IsValidationError reports whether err was produced by request validation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMalformedURL) ||
		errors.Is(err, ErrUnsupportedScheme) ||
		errors.Is(err, ErrUnsupportedMethod) ||
		errors.Is(err, ErrInvalidJSONBody) ||
		errors.Is(err, ErrMissingContentType)
}
