package executor

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(stdout, stderr *bytes.Buffer) *Executor {
	return &Executor{
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestShellCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shells only")
	}
	t.Setenv("SHELL", "")

	shell, args := ShellCommand("echo hi")
	assert.Equal(t, "/bin/sh", shell)
	assert.Equal(t, []string{"-c", "echo hi"}, args)
}

func TestExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shells only")
	}
	t.Setenv("SHELL", "/bin/sh")

	var stdout, stderr bytes.Buffer
	err := newTestExecutor(&stdout, &stderr).Execute(context.Background(), `printf 'a "quoted" word'`)
	require.NoError(t, err)
	assert.Equal(t, `a "quoted" word`, stdout.String())
}

func TestExecute_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shells only")
	}
	t.Setenv("SHELL", "/bin/sh")

	var stdout, stderr bytes.Buffer
	err := newTestExecutor(&stdout, &stderr).Execute(context.Background(), "echo oops >&2; exit 3")
	assert.ErrorContains(t, err, "command failed")
	assert.Equal(t, "oops\n", stderr.String())
}
