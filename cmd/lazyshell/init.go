package main

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
)

//go:embed lazyshell.zsh
var zshWidget string

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "init zsh",
		Short:     "Print the shell integration script",
		Long:      `Add eval "$(lazyshell init zsh)" to ~/.zshrc to bind the complete, explain and toggle widgets.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"zsh"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), zshWidget)
			return err
		},
	}
}
