package relay

import (
	"context"
	"errors"
	"fmt"
)

// Executor dispatches transport requests and normalizes the responses.
type Executor struct {
	// transport is the host networking primitive; nil means no host is available.
	transport Transport
	// clock times the dispatch.
	clock Clock
	// sink receives diagnostics.
	sink DiagnosticSink
}

// NewExecutor creates an Executor. A nil clock is replaced with MonotonicClock and
// a nil sink with DiscardSink. A nil transport is kept: every call then fails with
// ErrHostUnavailable.
func NewExecutor(transport Transport, clock Clock, sink DiagnosticSink) *Executor {
	if clock == nil {
		clock = NewMonotonicClock()
	}

	if sink == nil {
		sink = DiscardSink{}
	}

	return &Executor{
		transport: transport,
		clock:     clock,
		sink:      sink,
	}
}

// Execute dispatches the request once and converts the response.
// No partial descriptor is returned on failure.
func (e *Executor) Execute(ctx context.Context, request *TransportRequest) (*ResponseDescriptor, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: nil transport request", ErrSerialization)
	}

	if e.transport == nil {
		return nil, ErrHostUnavailable
	}

	startTime := e.clock.Now()

	response, err := e.transport.Dispatch(ctx, request)

	endTime := e.clock.Now()

	if err != nil {
		e.sink.Log(ctx, "Request failed")

		if errors.Is(err, ErrHostUnavailable) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if response == nil {
		return nil, fmt.Errorf("%w: transport returned no response", ErrNetwork)
	}

	statusText := response.StatusText()
	if statusText == "" {
		statusText = NoStatusText
	}

	body, err := response.Text(ctx)

	switch {
	case errors.Is(err, ErrBodyNotText):
		body = NoResponseBody
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrBodyRead, err)
	}

	result := &ResponseDescriptor{
		Status:     response.StatusCode(),
		StatusText: statusText,
		Headers:    []Header{},
		Body:       body,
		ElapsedMs:  max(endTime-startTime, 0),
	}

	e.sink.Log(ctx, fmt.Sprintf("Request completed in %.2fms", result.ElapsedMs))

	return result, nil
}
