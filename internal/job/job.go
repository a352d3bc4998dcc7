// Package job runs a single blocking call in the background and exposes its
// liveness so a foreground loop can poll it.
package job

import (
	"context"

	"github.com/google/uuid"
)

// Handle tracks one background call
type Handle struct {
	ID string

	done   chan struct{}
	err    error
	cancel context.CancelFunc
}

// Start runs fn on its own goroutine and returns immediately. fn receives a
// context that is cancelled by Cancel or when ctx ends.
func Start(ctx context.Context, fn func(ctx context.Context) error) *Handle {
	jobCtx, cancel := context.WithCancel(ctx)
	h := &Handle{
		ID:     uuid.New().String(),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(h.done)
		defer cancel()
		h.err = fn(jobCtx)
	}()

	return h
}

// Alive reports whether the job is still running. It never blocks.
func (h *Handle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Done is closed when the job ends
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the job ends and returns its error
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Cancel asks the job to stop; Wait must still be called to collect it
func (h *Handle) Cancel() {
	h.cancel()
}
