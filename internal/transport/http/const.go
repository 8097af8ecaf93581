package http

import "time"

const (
	// DefaultIdleConnTimeout is how long an idle keep-alive connection stays in the pool.
	DefaultIdleConnTimeout = 90 * time.Second

	// DefaultMaxIdleConns caps the number of idle connections across all hosts.
	DefaultMaxIdleConns = 100

	// browserCleanupDelay gives Chrome time to release file locks before the profile is removed.
	browserCleanupDelay = 500 * time.Millisecond

	// browserProfilePattern names the temporary profile directory of the browser backend.
	browserProfilePattern = "reqrelay-browser-*"
)
