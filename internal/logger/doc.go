// Package logger provides a structured logging solution using the Zap logging library.
// It includes utilities for creating and managing loggers, setting log levels,
// and integrating logging with context so that every relayed request carries its own fields.
// The package supports key-value logging, formatted logging, and an atomic global level.
package logger
