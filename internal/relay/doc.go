// Package relay validates generic HTTP request descriptors, translates them into
// transport requests, dispatches them through an injected host transport and
// normalizes the outcome into a generic response descriptor with timing data.
// The network itself, the clock, URL parsing and diagnostics are collaborators
// supplied by the caller, so every rule here is testable without a network.
package relay
