package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevNoColor := out, color.NoColor
	out, color.NoColor = &buf, true
	t.Cleanup(func() { out, color.NoColor = prevOut, prevNoColor })
	return &buf
}

func TestShowMessages(t *testing.T) {
	buf := captureOutput(t)

	ShowSuccess("copied")
	ShowError("failed")
	ShowWarning("careful")
	ShowInfo("fyi")

	assert.Equal(t, "✓ copied\n✗ failed\n! careful\nfyi\n", buf.String())
}

func TestStatusIsMessageWriter(t *testing.T) {
	buf := captureOutput(t)

	Status().Write([]byte("spinning"))
	assert.Equal(t, "spinning", buf.String())
}
