package app

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/reqrelay/internal/logger"
	"github.com/oshokin/reqrelay/internal/relay"
)

// ExecuteValidateCommand validates one request without sending it.
func ExecuteValidateCommand(ctx context.Context, input RequestInput, stdin io.Reader, stdout io.Writer) {
	if err := Validate(ctx, input, stdin, stdout); err != nil {
		logger.Fatalf(ctx, "Request is invalid: %v", err)
	}
}

// Validate applies the relay's validation rules to the request and reports the outcome.
func Validate(ctx context.Context, input RequestInput, stdin io.Reader, stdout io.Writer) error {
	descriptor, err := input.Descriptor(stdin)
	if err != nil {
		return err
	}

	r := relay.NewRelay(relay.Options{})

	if err = r.Validate(ctx, descriptor); err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "valid: %s %s\n", descriptor.Method, descriptor.URL)

	return err
}
