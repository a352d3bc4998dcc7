package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
)

// Executor runs accepted commands through the user's shell
type Executor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// New returns an executor attached to the process's standard streams
func New(logger *slog.Logger) *Executor {
	return &Executor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// ShellCommand returns the shell and arguments used to run command
func ShellCommand(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return shell, []string{"-c", command}
}

// Execute runs command and waits for it to finish
func (e *Executor) Execute(ctx context.Context, command string) error {
	shell, args := ShellCommand(command)
	e.Logger.Debug("Executor: executing command", "shell", shell, "command", command)

	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			e.Logger.Debug("Executor: command failed", "exit_code", exitErr.ExitCode())
		} else {
			e.Logger.Debug("Executor: command failed", "error", err)
		}
		return fmt.Errorf("command failed: %w", err)
	}

	e.Logger.Debug("Executor: command completed successfully")
	return nil
}
