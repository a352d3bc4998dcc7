package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/iishyfishyy/lazyshell/internal/editor"
	"github.com/iishyfishyy/lazyshell/internal/executor"
	"github.com/iishyfishyy/lazyshell/internal/ui"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [command description]",
		Short: "Generate a command outside the line editor and run, refine or copy it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	request := strings.Join(args, " ")
	logger.Debug("Main: starting with request", "request", request)

	cfg, err := resolveConfig(ctx, "")
	if err != nil {
		return err
	}
	ag, err := newAgent(cfg)
	if err != nil {
		return err
	}
	actions := editor.NewActions(ag)
	runner := executor.New(logger)

	// Translate request to command
	buf, err := actions.Complete(ctx, editor.Buffer{}, request)
	if err != nil {
		return completeFailed(err)
	}
	logger.Debug("Agent: generated command", "command", buf.Text)

	// Interactive loop for modification
	for {
		action, err := ui.ConfirmCommand(buf.Text)
		if err != nil {
			if errors.Is(err, ui.ErrInterrupted) {
				return failed(err)
			}
			return fmt.Errorf("failed to get user confirmation: %w", err)
		}

		switch action {
		case ui.ActionRun:
			logger.Debug("User: chose to run command")
			if err := runner.Execute(ctx, buf.Text); err != nil {
				ui.ShowError(fmt.Sprintf("Command failed: %v", err))
				return failed(err)
			}
			return nil

		case ui.ActionExplain:
			explanation, err := actions.Explain(ctx, buf)
			if aborted(err) {
				return failed(err)
			}
			if err == nil {
				ui.ShowSection("Explanation")
				ui.ShowInfo(explanation + "\n")
			}

		case ui.ActionCopy:
			if err := clipboard.WriteAll(buf.Text); err != nil {
				ui.ShowError(fmt.Sprintf("Failed to copy to clipboard: %v", err))
			} else {
				ui.ShowSuccess("Command copied to clipboard!")
			}

		case ui.ActionCancel:
			ui.ShowInfo("Cancelled.")
			return nil

		case ui.ActionModify:
			logger.Debug("User: chose to modify command")
			modRequest, err := ui.PromptForModification()
			if err != nil {
				if errors.Is(err, ui.ErrInterrupted) {
					return failed(err)
				}
				return fmt.Errorf("failed to get modification: %w", err)
			}

			refined, err := actions.Complete(ctx, buf, modRequest)
			if aborted(err) {
				return failed(err)
			}
			if err != nil {
				// The previous command stays on offer
				var declined *editor.DeclinedError
				if errors.As(err, &declined) {
					ui.ShowWarning(declined.Error())
				}
				continue
			}
			buf = refined
			logger.Debug("Agent: refined command", "command", buf.Text)
		}
	}
}
