package relay

//go:generate $MOCKGEN -source=relay.go -destination=mocks/relay_mock.go

import (
	"context"

	"github.com/google/uuid"

	"github.com/oshokin/reqrelay/internal/logger"
)

// Relay is the inbound boundary: one call validates, dispatches and normalizes one request.
type Relay interface {
	// Send validates and dispatches the request and returns the normalized response.
	Send(ctx context.Context, request *RequestDescriptor) (*ResponseDescriptor, error)
	// SendJSON is Send over the JSON request and response shapes.
	SendJSON(ctx context.Context, payload []byte) ([]byte, error)
	// Validate applies the validation rules without dispatching anything.
	Validate(ctx context.Context, request *RequestDescriptor) error
}

// Options holds the collaborators of a Relay. Nil fields get defaults,
// except Transport: without it every dispatch fails with ErrHostUnavailable.
type Options struct {
	// Transport is the host networking primitive.
	Transport Transport
	// URLParser parses descriptor URLs.
	URLParser URLParser
	// Clock times the dispatch.
	Clock Clock
	// Sink receives diagnostics.
	Sink DiagnosticSink
}

// RelayImpl implements the Relay interface.
type RelayImpl struct {
	// builder validates descriptors.
	builder *Builder
	// executor dispatches and normalizes.
	executor *Executor
	// sink receives diagnostics.
	sink DiagnosticSink
}

// NewRelay creates a Relay from the given collaborators.
func NewRelay(opts Options) *RelayImpl {
	sink := opts.Sink
	if sink == nil {
		sink = NewLoggerSink()
	}

	return &RelayImpl{
		builder:  NewBuilder(opts.URLParser, sink),
		executor: NewExecutor(opts.Transport, opts.Clock, sink),
		sink:     sink,
	}
}

// Send validates and dispatches the request and returns the normalized response.
func (r *RelayImpl) Send(ctx context.Context, request *RequestDescriptor) (*ResponseDescriptor, error) {
	ctx = withRequestID(ctx)
	tracker := newStateTracker(ctx)

	r.sink.Log(ctx, "Processing request...")

	tracker.moveTo(StateValidating)

	transportRequest, err := r.builder.Build(ctx, request)
	if err != nil {
		tracker.moveTo(StateRejected)

		return nil, err
	}

	tracker.moveTo(StateBuilt)
	tracker.moveTo(StateDispatching)

	response, err := r.executor.Execute(ctx, transportRequest)
	tracker.moveTo(TerminalState(err))

	if err != nil {
		return nil, err
	}

	return response, nil
}

// SendJSON decodes the JSON request shape, sends it and encodes the response.
func (r *RelayImpl) SendJSON(ctx context.Context, payload []byte) ([]byte, error) {
	request, err := DecodeRequest(payload)
	if err != nil {
		return nil, err
	}

	response, err := r.Send(ctx, request)
	if err != nil {
		return nil, err
	}

	return EncodeResponse(response)
}

// Validate applies the validation rules without dispatching anything.
func (r *RelayImpl) Validate(ctx context.Context, request *RequestDescriptor) error {
	_, err := r.builder.Build(withRequestID(ctx), request)

	return err
}

// withRequestID tags the context logger with a fresh request ID.
func withRequestID(ctx context.Context) context.Context {
	return logger.WithKV(ctx, "request_id", uuid.NewString())
}

// stateTracker logs lifecycle transitions of a single call at debug level.
type stateTracker struct {
	ctx     context.Context //nolint:containedctx // Scoped to a single call.
	current State
}

func newStateTracker(ctx context.Context) *stateTracker {
	return &stateTracker{ctx: ctx, current: StateIdle}
}

func (t *stateTracker) moveTo(next State) {
	if t.current.IsTerminal() {
		logger.WarnKV(t.ctx, "Request state changed after completion", "from", t.current.String(), "to", next.String())

		return
	}

	logger.DebugKV(t.ctx, "Request state changed", "from", t.current.String(), "to", next.String())

	t.current = next

	if next.IsTerminal() {
		logger.DebugKV(t.ctx, "Request finished", "state", next.String())
	}
}
