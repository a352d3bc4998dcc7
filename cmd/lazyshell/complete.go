package main

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/iishyfishyy/lazyshell/internal/editor"
	"github.com/iishyfishyy/lazyshell/internal/ui"

	"github.com/spf13/cobra"
)

func newCompleteCmd() *cobra.Command {
	var (
		buf       editor.Buffer
		query     string
		sessionID string
		copyOut   bool
	)

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Turn a query into a command, or alter the command in the buffer",
		Long: `complete reads a query (from --query or an interactive prompt) and prints the
new buffer on stdout. Nothing is printed on stdout when it fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("query") {
				q, err := ui.PromptQuery(buf.Text)
				if errors.Is(err, ui.ErrInterrupted) {
					logger.Debug("User: aborted query prompt")
					return failed(editor.ErrAborted)
				}
				if err != nil {
					return err
				}
				query = q
			}

			cfg, err := resolveConfig(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			ag, err := newAgent(cfg)
			if err != nil {
				return err
			}

			logger.Debug("Complete: sending query", "query", query, "buffer", buf.Text, "cursor", buf.Cursor)
			result, err := editor.NewActions(ag).Complete(cmd.Context(), buf, query)
			if err != nil {
				return completeFailed(err)
			}

			if copyOut {
				if err := clipboard.WriteAll(result.Text); err != nil {
					ui.ShowWarning(fmt.Sprintf("Failed to copy to clipboard: %v", err))
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), result.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&buf.Text, "buffer", "", "Current command line")
	cmd.Flags().IntVar(&buf.Cursor, "cursor", 0, "Cursor offset in the command line")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Query text (prompted for when omitted)")
	cmd.Flags().StringVar(&sessionID, "session", "", "Shell session id")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the new command to the clipboard")

	return cmd
}

// completeFailed shows failures the orchestrator does not report itself
func completeFailed(err error) error {
	var declined *editor.DeclinedError
	switch {
	case errors.As(err, &declined):
		ui.ShowWarning(declined.Error())
	case errors.Is(err, editor.ErrEmptyQuery):
		ui.ShowWarning("Empty query, nothing to do.")
	}
	return failed(err)
}

func newExplainCmd() *cobra.Command {
	var (
		buf       editor.Buffer
		sessionID string
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Explain the command in the buffer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if buf.Empty() {
				ui.ShowWarning("Nothing to explain.")
				return failed(editor.ErrEmptyBuffer)
			}

			cfg, err := resolveConfig(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			ag, err := newAgent(cfg)
			if err != nil {
				return err
			}

			explanation, err := editor.NewActions(ag).Explain(cmd.Context(), buf)
			if err != nil {
				return failed(err)
			}

			ui.ShowSection(buf.Text)
			fmt.Fprintln(ui.Status(), explanation)
			return nil
		},
	}

	cmd.Flags().StringVar(&buf.Text, "buffer", "", "Command line to explain")
	cmd.Flags().StringVar(&sessionID, "session", "", "Shell session id")

	return cmd
}
