package constants

// Header names the relay inspects or injects.
const (
	HeaderContentType = "Content-Type"
	HeaderUserAgent   = "User-Agent"
)

// MIMETypeJSON is the media type that triggers JSON body validation.
const MIMETypeJSON = "application/json"
