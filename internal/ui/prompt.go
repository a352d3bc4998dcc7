package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Action represents the user's choice
type Action int

const (
	ActionRun Action = iota
	ActionCancel
	ActionModify
	ActionExplain
	ActionCopy
)

// ErrInterrupted is returned when the user presses Ctrl-C at a prompt
var ErrInterrupted = errors.New("interrupted")

// Everything goes to stderr: stdout is reserved for the text handed back to
// the shell widget.
var (
	out   io.Writer = os.Stderr
	stdio           = survey.WithStdio(os.Stdin, os.Stderr, os.Stderr)
)

// Status returns the writer used for progress and status messages
func Status() io.Writer {
	return out
}

// IsInteractive reports whether the status writer is a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	err := survey.AskOne(p, response, append(opts, stdio)...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}

// PromptQuery asks for the free-text query. current is the command being
// altered, if any.
func PromptQuery(current string) (string, error) {
	message := "Query:"
	if current != "" {
		message = fmt.Sprintf("Alter `%s`:", current)
	}

	var query string
	if err := ask(&survey.Input{Message: message}, &query); err != nil {
		return "", err
	}
	return query, nil
}

// SelectOne prompts the user to pick one of options
func SelectOne(message string, options []string, def string) (string, error) {
	var choice string
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: def,
	}

	if err := ask(prompt, &choice); err != nil {
		return "", err
	}

	return choice, nil
}

// ConfirmCommand shows the command and asks the user what to do
func ConfirmCommand(command string) (Action, error) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintln(out, "\nGenerated command:")
	fmt.Fprintf(out, "  %s\n\n", command)

	var choice string
	prompt := &survey.Select{
		Message: "What would you like to do?",
		Options: []string{
			"Run it",
			"Modify it",
			"Explain it",
			"Copy it",
			"Cancel",
		},
	}

	if err := ask(prompt, &choice); err != nil {
		return ActionCancel, err
	}

	switch choice {
	case "Run it":
		return ActionRun, nil
	case "Modify it":
		return ActionModify, nil
	case "Explain it":
		return ActionExplain, nil
	case "Copy it":
		return ActionCopy, nil
	default:
		return ActionCancel, nil
	}
}

// PromptForModification asks the user how to modify the command
func PromptForModification() (string, error) {
	var modification string
	prompt := &survey.Input{
		Message: "How would you like to modify the command?",
	}

	if err := ask(prompt, &modification, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}

	return modification, nil
}

// ShowSection prints a bold section heading
func ShowSection(title string) {
	bold := color.New(color.Bold, color.Underline)
	bold.Fprintf(out, "\n%s\n", title)
}

// ShowSuccess displays a success message
func ShowSuccess(message string) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(out, "✓ %s\n", message)
}

// ShowError displays an error message
func ShowError(message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(out, "✗ %s\n", message)
}

// ShowWarning displays a warning message
func ShowWarning(message string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(out, "! %s\n", message)
}

// ShowInfo displays an info message
func ShowInfo(message string) {
	blue := color.New(color.FgBlue)
	blue.Fprintln(out, message)
}
