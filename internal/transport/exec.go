package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/iishyfishyy/lazyshell/internal/provider"
)

// Client programs in order of preference
const (
	ClientCurl = "curl"
	ClientWget = "wget"
)

var clientPrograms = []string{ClientCurl, ClientWget}

// ErrNoClient means neither curl nor wget is installed
var ErrNoClient = errors.New("no HTTP client program found (need curl or wget)")

// SelectClient returns the name and path of the first installed client program
func SelectClient(lookPath func(string) (string, error)) (string, string, error) {
	for _, name := range clientPrograms {
		if path, err := lookPath(name); err == nil {
			return name, path, nil
		}
	}
	return "", "", ErrNoClient
}

// Exec posts requests by running curl or wget in a detached process group
type Exec struct {
	lookPath func(string) (string, error)
}

// NewExec creates an exec transport; lookPath defaults to exec.LookPath
func NewExec(lookPath func(string) (string, error)) *Exec {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &Exec{lookPath: lookPath}
}

// Preflight checks that a client program is installed
func (e *Exec) Preflight(lookPath func(string) (string, error)) error {
	_, _, err := SelectClient(lookPath)
	return err
}

// Post runs the selected client program with the body on stdin. Headers,
// which carry the API key, are passed in a private temporary file so they never
// appear in the process list. Only stdout reaches out; stderr is discarded.
func (e *Exec) Post(ctx context.Context, req provider.Request, out io.Writer) error {
	name, path, err := SelectClient(e.lookPath)
	if err != nil {
		return err
	}

	headerFile, err := writeHeaderFile(name, req.Headers)
	if err != nil {
		return err
	}
	defer os.Remove(headerFile)

	cmd := exec.CommandContext(ctx, path, clientArgs(name, req.URL, headerFile)...)
	cmd.Stdin = bytes.NewReader(req.Body)
	cmd.Stdout = out
	cmd.Stderr = nil
	detach(cmd)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Program: name, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run %s: %w", name, err)
	}

	return nil
}

// headerLines renders headers in the client's file syntax: one "K: V" per
// line for curl's -H @file, wgetrc "header = K: V" lines for wget --config.
func headerLines(name string, headers map[string]string) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if name == ClientWget {
			b.WriteString("header = ")
		}
		fmt.Fprintf(&b, "%s: %s\n", k, headers[k])
	}
	return b.String()
}

// writeHeaderFile stores the headers in a temporary file readable only by the
// current user and returns its path
func writeHeaderFile(name string, headers map[string]string) (string, error) {
	f, err := os.CreateTemp("", "lazyshell-headers-*")
	if err != nil {
		return "", fmt.Errorf("failed to create header file: %w", err)
	}
	if _, err := f.WriteString(headerLines(name, headers)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write header file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write header file: %w", err)
	}
	return f.Name(), nil
}

func clientArgs(name, url, headerFile string) []string {
	switch name {
	case ClientWget:
		return []string{"--config=" + headerFile, "-q", "-O", "-",
			"--method=POST", "--body-file=/dev/stdin", "--content-on-error", url}
	default:
		return []string{"-sS", "-X", "POST", "--data-binary", "@-", "-H", "@" + headerFile, url}
	}
}
