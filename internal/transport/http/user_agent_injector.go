package http

import (
	"net/http"

	"github.com/oshokin/reqrelay/internal/constants"
	"github.com/oshokin/reqrelay/internal/utils"
)

// UserAgentInjector is an http.RoundTripper that sets a User-Agent on requests that carry none.
// A User-Agent supplied by the relayed request always wins.
type UserAgentInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgentProvider provides the User-Agent string to inject.
	userAgentProvider utils.UserAgentProvider
}

// NewUserAgentInjector creates and returns a new instance of UserAgentInjector.
func NewUserAgentInjector(next http.RoundTripper, userAgentProvider utils.UserAgentProvider) http.RoundTripper {
	return &UserAgentInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
	}
}

// RoundTrip injects the User-Agent header if it is missing and forwards the request.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(constants.HeaderUserAgent) == "" {
		if userAgent := t.userAgentProvider.GetUserAgent(); userAgent != "" {
			req.Header.Set(constants.HeaderUserAgent, userAgent)
		}
	}

	return t.next.RoundTrip(req)
}
