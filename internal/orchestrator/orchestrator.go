// Package orchestrator runs one LLM request end to end: preflight checks,
// payload building, the background transport call with a progress display,
// and parsing of the raw response into normalized text.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/iishyfishyy/lazyshell/internal/job"
	"github.com/iishyfishyy/lazyshell/internal/progress"
	"github.com/iishyfishyy/lazyshell/internal/provider"
	"github.com/iishyfishyy/lazyshell/internal/transport"
)

// scratchPattern names the per-call response file
const scratchPattern = "lazyshell-*.json"

// Orchestrator dispatches requests through a Transport. It holds no
// per-call state, so one value can serve any number of calls.
type Orchestrator struct {
	transport transport.Transport
	status    io.Writer
	presenter *progress.Presenter
	getenv    func(string) string
	lookPath  func(string) (string, error)
	tempDir   string
	logger    *slog.Logger
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithEnv replaces os.Getenv for credential lookups
func WithEnv(getenv func(string) string) Option {
	return func(o *Orchestrator) { o.getenv = getenv }
}

// WithLookPath replaces exec.LookPath for tool checks
func WithLookPath(lookPath func(string) (string, error)) Option {
	return func(o *Orchestrator) { o.lookPath = lookPath }
}

// WithTempDir sets the directory for scratch files ("" means os.TempDir)
func WithTempDir(dir string) Option {
	return func(o *Orchestrator) { o.tempDir = dir }
}

// WithPresenter replaces the default progress presenter
func WithPresenter(p *progress.Presenter) Option {
	return func(o *Orchestrator) { o.presenter = p }
}

// WithLogger sets the debug logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// New creates an Orchestrator that reports progress and failures on status
func New(t transport.Transport, status io.Writer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		transport: t,
		status:    status,
		getenv:    os.Getenv,
		lookPath:  exec.LookPath,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.presenter == nil {
		o.presenter = progress.New(status)
	}
	return o
}

// Preflight verifies the provider credential and any external programs the
// transport needs
func (o *Orchestrator) Preflight(spec provider.Spec) error {
	if o.getenv(spec.KeyEnv) == "" {
		return &PreflightError{
			Missing: fmt.Sprintf("%s is not set.", spec.KeyEnv),
			Remedy: fmt.Sprintf("Create a key at %s and export %s=<key> (or put it in ~/.lazyshell/.env).",
				spec.KeyURL, spec.KeyEnv),
		}
	}

	if p, ok := o.transport.(transport.Preflighter); ok {
		if err := p.Preflight(o.lookPath); err != nil {
			return &PreflightError{
				Missing: "Neither curl nor wget is installed.",
				Remedy:  "Install curl (preferred) or wget, or set 'transport: http' in ~/.lazyshell/config.yaml.",
			}
		}
	}

	return nil
}

// Call sends (intro, prompt) to the provider described by spec while label is
// shown next to a spinner, and returns the normalized generated text. Every
// failure is also reported on the status writer. No scratch file survives the
// call on any path.
func (o *Orchestrator) Call(ctx context.Context, spec provider.Spec, intro, prompt, label string) (string, error) {
	text, err := o.call(ctx, spec, intro, prompt, label)
	if err != nil {
		o.report(err)
		return "", err
	}
	return text, nil
}

func (o *Orchestrator) call(ctx context.Context, spec provider.Spec, intro, prompt, label string) (string, error) {
	adapter, err := provider.New(spec)
	if err != nil {
		return "", fmt.Errorf("dispatch: %w", err)
	}

	if err := o.Preflight(spec); err != nil {
		o.logger.Debug("Orchestrator: preflight failed", "provider", spec.ID, "error", err)
		return "", err
	}

	req, err := adapter.BuildPayload(intro, prompt, o.getenv(spec.KeyEnv))
	if err != nil {
		return "", fmt.Errorf("dispatch: %w", err)
	}

	scratch, err := os.CreateTemp(o.tempDir, scratchPattern)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	scratchPath := scratch.Name()
	defer os.Remove(scratchPath)

	h := job.Start(ctx, func(ctx context.Context) error {
		return o.transport.Post(ctx, req, scratch)
	})
	o.logger.Debug("Orchestrator: dispatched",
		"job", h.ID, "provider", spec.ID, "model", spec.Model, "scratch", scratchPath)

	if err := o.presenter.Run(ctx, h, label); err != nil {
		h.Cancel()
		h.Wait()
		scratch.Close()
		return "", err
	}

	postErr := h.Wait()
	closeErr := scratch.Close()
	o.logger.Debug("Orchestrator: job finished", "job", h.ID, "status", transport.ExitCode(postErr))
	if postErr != nil {
		return "", &TransportError{ExitCode: transport.ExitCode(postErr), Err: postErr}
	}
	if closeErr != nil {
		return "", &TransportError{ExitCode: 1, Err: closeErr}
	}

	raw, err := os.ReadFile(scratchPath)
	os.Remove(scratchPath)
	if err != nil {
		return "", &ParseError{Err: err}
	}

	res, err := adapter.ParseResponse(raw)
	if err != nil {
		o.logger.Debug("Orchestrator: unexpected response", "job", h.ID, "body", string(raw))
		return "", &ParseError{Err: err}
	}
	if res.Failed {
		return "", &ProviderError{Message: res.Message}
	}

	return provider.Normalize(res.Text), nil
}

func (o *Orchestrator) report(err error) {
	red := color.New(color.FgRed, color.Bold)

	var pre *PreflightError
	switch {
	case errors.As(err, &pre):
		red.Fprintf(o.status, "✗ %s\n", pre.Missing)
		fmt.Fprintf(o.status, "  %s\n", pre.Remedy)
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(o.status, "Cancelled.")
	default:
		red.Fprintf(o.status, "✗ %s\n", err)
	}
}
