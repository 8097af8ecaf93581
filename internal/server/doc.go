// Package server exposes the relay over HTTP with a chi router.
package server
