// Package app wires configuration, transports, the relay and the HTTP API
// together for the command-line entry points.
package app
