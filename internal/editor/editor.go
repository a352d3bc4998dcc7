// Package editor implements the line-editor actions: completing or rewriting
// the current buffer from a query, and explaining it.
package editor

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/iishyfishyy/lazyshell/internal/agent"
)

var (
	// ErrAborted means the user interrupted the query prompt
	ErrAborted = errors.New("aborted")

	// ErrEmptyQuery means the query was blank
	ErrEmptyQuery = errors.New("empty query")

	// ErrEmptyBuffer means there is no command to explain
	ErrEmptyBuffer = errors.New("buffer is empty, nothing to explain")
)

// declinedPrefix marks an answer where the model declined to produce a command
const declinedPrefix = "#"

// DeclinedError carries the model's reason for not producing a command
type DeclinedError struct {
	Reason string
}

func (e *DeclinedError) Error() string {
	return strings.TrimSpace(strings.TrimPrefix(e.Reason, declinedPrefix))
}

// Buffer is the editor's command line and cursor offset
type Buffer struct {
	Text   string
	Cursor int
}

// Empty reports whether the buffer holds only whitespace
func (b Buffer) Empty() bool {
	return strings.TrimSpace(b.Text) == ""
}

// Actions binds editor actions to an agent
type Actions struct {
	agent agent.Agent
}

// NewActions creates editor actions backed by ag
func NewActions(ag agent.Agent) *Actions {
	return &Actions{agent: ag}
}

// Complete turns query into a command. An empty buffer is translated from
// scratch; otherwise the existing command is altered to satisfy the query.
// On success the cursor is placed after the last character of the new text.
// On any failure the original buffer is returned unchanged.
func (a *Actions) Complete(ctx context.Context, buf Buffer, query string) (Buffer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return buf, ErrEmptyQuery
	}

	var (
		text string
		err  error
	)
	if buf.Empty() {
		text, err = a.agent.TranslateToCommand(ctx, query)
	} else {
		text, err = a.agent.RefineCommand(ctx, buf.Text, query)
	}
	if err != nil {
		return buf, err
	}

	if strings.HasPrefix(text, declinedPrefix) {
		return buf, &DeclinedError{Reason: text}
	}

	return Buffer{Text: text, Cursor: utf8.RuneCountInString(text)}, nil
}

// Explain returns a prose explanation of the buffer's command
func (a *Actions) Explain(ctx context.Context, buf Buffer) (string, error) {
	if buf.Empty() {
		return "", ErrEmptyBuffer
	}
	return a.agent.ExplainCommand(ctx, buf.Text)
}
