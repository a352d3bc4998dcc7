package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/iishyfishyy/lazyshell/internal/agent"
	"github.com/iishyfishyy/lazyshell/internal/orchestrator"
	"github.com/iishyfishyy/lazyshell/internal/progress"
	"github.com/iishyfishyy/lazyshell/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAgent records which method ran
type fakeAgent struct {
	reply   string
	err     error
	called  string
	command string
	request string
}

func (f *fakeAgent) TranslateToCommand(ctx context.Context, request string) (string, error) {
	f.called, f.request = "translate", request
	return f.reply, f.err
}

func (f *fakeAgent) RefineCommand(ctx context.Context, originalCommand, modificationRequest string) (string, error) {
	f.called, f.command, f.request = "refine", originalCommand, modificationRequest
	return f.reply, f.err
}

func (f *fakeAgent) ExplainCommand(ctx context.Context, command string) (string, error) {
	f.called, f.command = "explain", command
	return f.reply, f.err
}

func TestComplete_EmptyBufferTranslates(t *testing.T) {
	ag := &fakeAgent{reply: "ls -lS"}
	got, err := NewActions(ag).Complete(context.Background(), Buffer{Text: "  ", Cursor: 1}, "list files by size")

	require.NoError(t, err)
	assert.Equal(t, "translate", ag.called)
	assert.Equal(t, Buffer{Text: "ls -lS", Cursor: 6}, got)
}

func TestComplete_ExistingBufferRefines(t *testing.T) {
	ag := &fakeAgent{reply: "grep -i foo"}
	got, err := NewActions(ag).Complete(context.Background(), Buffer{Text: "grep foo", Cursor: 3}, " case insensitive ")

	require.NoError(t, err)
	assert.Equal(t, "refine", ag.called)
	assert.Equal(t, "grep foo", ag.command)
	assert.Equal(t, "case insensitive", ag.request)
	assert.Equal(t, Buffer{Text: "grep -i foo", Cursor: 11}, got)
}

func TestComplete_DeclinedKeepsBuffer(t *testing.T) {
	orig := Buffer{Text: "rm -rf", Cursor: 2}
	ag := &fakeAgent{reply: "# refusing to guess a destructive command"}

	got, err := NewActions(ag).Complete(context.Background(), orig, "everything")

	var declined *DeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "refusing to guess a destructive command", declined.Error())
	assert.Equal(t, orig, got)
}

func TestComplete_ErrorKeepsBuffer(t *testing.T) {
	orig := Buffer{Text: "tar", Cursor: 3}
	ag := &fakeAgent{err: errors.New("boom")}

	got, err := NewActions(ag).Complete(context.Background(), orig, "extract")
	assert.Error(t, err)
	assert.Equal(t, orig, got)
}

func TestComplete_EmptyQuery(t *testing.T) {
	ag := &fakeAgent{}
	orig := Buffer{Text: "ls", Cursor: 1}

	got, err := NewActions(ag).Complete(context.Background(), orig, "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, orig, got)
	assert.Empty(t, ag.called, "no request may be made")
}

func TestExplain(t *testing.T) {
	ag := &fakeAgent{reply: "Shows disk usage."}

	got, err := NewActions(ag).Explain(context.Background(), Buffer{Text: "df -h"})
	require.NoError(t, err)
	assert.Equal(t, "Shows disk usage.", got)
	assert.Equal(t, "df -h", ag.command)

	_, err = NewActions(ag).Explain(context.Background(), Buffer{})
	assert.ErrorIs(t, err, ErrEmptyBuffer)
}

// replayTransport answers every request with body and keeps the last request
type replayTransport struct {
	body string
	last provider.Request
}

func (r *replayTransport) Post(ctx context.Context, req provider.Request, out io.Writer) error {
	r.last = req
	_, err := io.WriteString(out, r.body)
	return err
}

func newStack(t *testing.T, body string) (*Actions, *replayTransport) {
	t.Helper()
	tr := &replayTransport{body: body}
	orch := orchestrator.New(tr, &bytes.Buffer{},
		orchestrator.WithEnv(func(k string) string { return "key" }),
		orchestrator.WithTempDir(t.TempDir()),
		orchestrator.WithPresenter(progress.New(io.Discard).WithTick(time.Millisecond)),
	)
	spec, err := provider.Default(provider.OpenAI)
	require.NoError(t, err)
	return NewActions(agent.NewLLMAgent(orch, spec)), tr
}

func userPrompt(t *testing.T, req provider.Request) string {
	t.Helper()
	var body struct {
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(req.Body, &body))
	return body.Messages[len(body.Messages)-1].Content
}

func TestEndToEnd_ListFilesBySize(t *testing.T) {
	actions, tr := newStack(t, `{"choices":[{"message":{"content":"`+"`ls -lS`"+`"}}]}`)

	got, err := actions.Complete(context.Background(), Buffer{}, "list files by size")
	require.NoError(t, err)
	assert.Equal(t, "ls -lS", got.Text)
	assert.Equal(t, "list files by size", userPrompt(t, tr.last))
}

func TestEndToEnd_RefinePrompt(t *testing.T) {
	actions, tr := newStack(t, `{"choices":[{"message":{"content":"grep -i foo"}}]}`)

	_, err := actions.Complete(context.Background(), Buffer{Text: "grep foo", Cursor: 8}, "case insensitive")
	require.NoError(t, err)
	assert.Equal(t, "Alter zsh command `grep foo` to comply with query `case insensitive`", userPrompt(t, tr.last))
}

func TestEndToEnd_DeclinedAnswer(t *testing.T) {
	actions, _ := newStack(t, `{"choices":[{"message":{"content":"# no such tool exists"}}]}`)
	orig := Buffer{Text: "frobnicate", Cursor: 4}

	got, err := actions.Complete(context.Background(), orig, "make it faster")

	var declined *DeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, orig, got)
}
