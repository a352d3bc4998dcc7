package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/iishyfishyy/lazyshell/internal/config"
	"github.com/iishyfishyy/lazyshell/internal/provider"
	"github.com/iishyfishyy/lazyshell/internal/transport"
	"github.com/iishyfishyy/lazyshell/internal/ui"

	"github.com/spf13/cobra"
)

func newConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Choose the default provider and how requests are sent",
		Args:  cobra.NoArgs,
		RunE:  runConfigure,
	}
}

func runConfigure(cmd *cobra.Command, args []string) error {
	ui.ShowSection("lazyshell Configuration")

	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	providers := make([]string, len(provider.IDs))
	for i, id := range provider.IDs {
		providers[i] = string(id)
	}
	chosen, err := ui.SelectOne("Default provider:", providers, string(cfg.Provider))
	if err != nil {
		return failed(err)
	}
	id, err := provider.ParseID(chosen)
	if err != nil {
		return err
	}

	kinds := []string{string(transport.KindHTTP), string(transport.KindExec)}
	current := string(cfg.Transport)
	if current == "" {
		current = string(transport.KindHTTP)
	}
	kind, err := ui.SelectOne("Send requests with:", kinds, current)
	if err != nil {
		return failed(err)
	}

	updated := cfg.WithProvider(id)
	updated.Transport = transport.Kind(kind)

	if updated.Transport == transport.KindExec {
		name, _, err := transport.SelectClient(exec.LookPath)
		if err != nil {
			ui.ShowWarning("Neither curl nor wget is installed; requests will fail until one is.")
		} else {
			ui.ShowInfo(fmt.Sprintf("Requests will be sent with %s.", name))
		}
	}

	spec, err := updated.Spec()
	if err != nil {
		return err
	}
	if os.Getenv(spec.KeyEnv) == "" {
		ui.ShowWarning(fmt.Sprintf("%s is not set. Create a key at %s and export it or add it to ~/%s/%s.",
			spec.KeyEnv, spec.KeyURL, config.ConfigDirName, config.EnvFileName))
	}

	if err := config.SaveFile(&updated, configPath); err != nil {
		return err
	}

	logger.Debug("Config: saved", "path", configPath, "provider", updated.Provider, "transport", updated.Transport)
	ui.ShowSuccess(fmt.Sprintf("Configuration saved to %s", configPath))
	ui.ShowInfo("\nAdd this to ~/.zshrc to bind the widgets: eval \"$(lazyshell init zsh)\"")
	return nil
}
