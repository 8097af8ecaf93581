// Package utils provides small helpers shared by the transports and the CLI:
// content type checks, input reading, header line parsing and text truncation.
package utils
