// Package http provides the host transports behind the relay: a net/http client
// wrapped in User-Agent injection and debug dumps, and a headless browser that
// issues fetch() calls from a page.
package http
