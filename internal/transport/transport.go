// Package transport sends a built provider request and copies the raw response
// body to a writer.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/iishyfishyy/lazyshell/internal/provider"
)

// Transport issues a POST and writes the response body to out.
// The body is written whatever the HTTP status, so API error payloads reach
// the caller for parsing.
type Transport interface {
	Post(ctx context.Context, req provider.Request, out io.Writer) error
}

// Preflighter is implemented by transports that depend on external programs
type Preflighter interface {
	// Preflight reports which program is missing, if any
	Preflight(lookPath func(string) (string, error)) error
}

// ExitError is a non-zero exit of the client program
type ExitError struct {
	Program string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Program, e.Code)
}

// ExitCode maps err to a process-style exit status: 0 for nil, the program's
// status for an ExitError and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Kind selects a Transport implementation
type Kind string

const (
	KindHTTP Kind = "http"
	KindExec Kind = "exec"
)

// New returns the transport for kind. The exec transport resolves its client
// program with lookPath.
func New(kind Kind, lookPath func(string) (string, error)) (Transport, error) {
	switch kind {
	case "", KindHTTP:
		return NewHTTP(nil), nil
	case KindExec:
		return NewExec(lookPath), nil
	default:
		return nil, fmt.Errorf("unknown transport: %s", kind)
	}
}
