package main

import (
	"fmt"
	"os"

	"github.com/iishyfishyy/lazyshell/internal/config"
	"github.com/iishyfishyy/lazyshell/internal/session"
	"github.com/iishyfishyy/lazyshell/internal/ui"

	"github.com/spf13/cobra"
)

func newToggleCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Switch to the next provider and print it",
		Long: `toggle switches the provider for one shell session when --session is given,
otherwise it changes the default provider in the config file. LAZYSHELL_PROVIDER
still takes precedence over the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var from, next config.Config
			if sessionID == "" {
				// The file's own provider is toggled; LAZYSHELL_PROVIDER is not
				// part of what gets saved.
				loaded, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				from, next = *loaded, loaded.Toggle()
				if err := config.Save(&next); err != nil {
					return err
				}
				if v := os.Getenv(config.EnvProvider); v != "" {
					ui.ShowWarning(fmt.Sprintf("%s=%s still overrides the config file in this shell.", config.EnvProvider, v))
				}
			} else {
				cfg, err := resolveConfig(ctx, sessionID)
				if err != nil {
					return err
				}
				from, next = cfg, cfg.Toggle()

				store, err := openSessions()
				if err != nil {
					return err
				}
				defer store.Close()

				if err := store.SetProvider(ctx, sessionID, next.Provider); err != nil {
					return err
				}
				if n, err := store.Prune(ctx, session.DefaultMaxAge); err != nil {
					logger.Debug("Session: prune failed", "error", err)
				} else if n > 0 {
					logger.Debug("Session: pruned stale sessions", "count", n)
				}
			}

			logger.Debug("Toggle: switched provider", "from", from.Provider, "to", next.Provider, "session", sessionID)
			fmt.Fprintln(cmd.OutOrStdout(), next.Provider)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Shell session id")
	return cmd
}

func newProviderCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Print the active provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Provider)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Shell session id")
	return cmd
}
