package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"

	"github.com/iishyfishyy/lazyshell/internal/agent"
	"github.com/iishyfishyy/lazyshell/internal/config"
	"github.com/iishyfishyy/lazyshell/internal/editor"
	"github.com/iishyfishyy/lazyshell/internal/orchestrator"
	"github.com/iishyfishyy/lazyshell/internal/progress"
	"github.com/iishyfishyy/lazyshell/internal/session"
	"github.com/iishyfishyy/lazyshell/internal/transport"
	"github.com/iishyfishyy/lazyshell/internal/ui"

	"github.com/spf13/cobra"
)

var (
	// version is set by goreleaser at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// CLI flags
	debug bool

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// exitStatusAborted is what a shell reports for a process ended by SIGINT
const exitStatusAborted = 130

// exitError ends the process with code. The failure has already been shown
// to the user.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "lazyshell",
		Short:         "LLM-backed command completion for zsh",
		Long:          "lazyshell turns natural language into shell commands from inside the zsh line editor",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
			if err := config.LoadEnv(); err != nil {
				logger.Debug("Config: could not load .env", "error", err)
			}
			return nil
		},
	}

	// Add global debug flag
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(
		newCompleteCmd(),
		newExplainCmd(),
		newAskCmd(),
		newToggleCmd(),
		newProviderCmd(),
		newConfigureCmd(),
		newInitCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(exitStatus(err))
	}
}

// exitStatus reports err to the user unless that already happened and maps
// it to a process exit status
func exitStatus(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if aborted(err) {
		return exitStatusAborted
	}
	ui.ShowError(err.Error())
	return 1
}

// failed wraps an error that the orchestrator or a handler has already
// reported
func failed(err error) error {
	if aborted(err) {
		return &exitError{code: exitStatusAborted}
	}
	return &exitError{code: 1}
}

func aborted(err error) bool {
	return errors.Is(err, ui.ErrInterrupted) ||
		errors.Is(err, editor.ErrAborted) ||
		errors.Is(err, context.Canceled)
}

// resolveConfig loads the configuration and applies the LAZYSHELL_PROVIDER
// variable and the session's toggled provider, in increasing precedence
func resolveConfig(ctx context.Context, sessionID string) (config.Config, error) {
	if debug {
		configPath, _ := config.GetConfigPath()
		logger.Debug("Config: loading", "path", configPath)
	}

	loaded, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := loaded.ApplyEnv(os.Getenv)

	if sessionID != "" {
		cfg = applySession(ctx, cfg, sessionID)
	}

	logger.Debug("Config: resolved", "provider", cfg.Provider, "transport", cfg.Transport, "session", sessionID)
	return cfg, nil
}

// applySession switches cfg to the provider toggled for sessionID, if any.
// A broken session store only costs the toggle, never the request.
func applySession(ctx context.Context, cfg config.Config, sessionID string) config.Config {
	store, err := openSessions()
	if err != nil {
		logger.Debug("Session: store unavailable", "error", err)
		return cfg
	}
	defer store.Close()

	id, ok, err := store.Provider(ctx, sessionID)
	if err != nil {
		logger.Debug("Session: lookup failed", "session", sessionID, "error", err)
		return cfg
	}
	if ok {
		return cfg.WithProvider(id)
	}
	return cfg
}

func openSessions() (*session.Store, error) {
	path, err := session.GetStorePath()
	if err != nil {
		return nil, err
	}
	return session.Open(path)
}

// newAgent builds the request stack for cfg: transport, orchestrator with
// progress on the status writer, and the LLM agent
func newAgent(cfg config.Config) (*agent.LLMAgent, error) {
	spec, err := cfg.Spec()
	if err != nil {
		return nil, err
	}

	tr, err := transport.New(cfg.Transport, exec.LookPath)
	if err != nil {
		return nil, err
	}

	var spinner io.Writer = ui.Status()
	if !ui.IsInteractive() {
		spinner = io.Discard
	}

	orch := orchestrator.New(tr, ui.Status(),
		orchestrator.WithPresenter(progress.New(spinner)),
		orchestrator.WithLogger(logger),
	)
	return agent.NewLLMAgent(orch, spec), nil
}
