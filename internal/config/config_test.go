package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iishyfishyy/lazyshell/internal/provider"
	"github.com/iishyfishyy/lazyshell/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingReturnsDefault(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	cfg := &Config{
		Provider:  provider.Anthropic,
		Transport: transport.KindExec,
		Providers: map[provider.ID]Override{
			provider.Anthropic: {Model: "claude-3-opus-latest", MaxTokens: 512},
		},
	}

	require.NoError(t, SaveFile(cfg, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("provider: anthropic\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, provider.Anthropic, cfg.Provider)
	assert.Equal(t, transport.KindHTTP, cfg.Transport)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("provider: [unterminated"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestToggle(t *testing.T) {
	cfg := *Default()

	toggled := cfg.Toggle()
	assert.Equal(t, provider.Anthropic, toggled.Provider)
	assert.Equal(t, provider.OpenAI, cfg.Provider, "toggle must not mutate the receiver")

	assert.Equal(t, provider.OpenAI, toggled.Toggle().Provider)
}

func TestToggle_DoesNotShareOverrides(t *testing.T) {
	cfg := Config{
		Provider:  provider.OpenAI,
		Providers: map[provider.ID]Override{provider.OpenAI: {Model: "gpt-4o"}},
	}

	toggled := cfg.Toggle()
	toggled.Providers[provider.OpenAI] = Override{Model: "changed"}
	assert.Equal(t, "gpt-4o", cfg.Providers[provider.OpenAI].Model)
}

func TestToggle_UnknownGoesToFirst(t *testing.T) {
	cfg := Config{Provider: "mystery"}
	assert.Equal(t, provider.IDs[0], cfg.Toggle().Provider)
}

func TestApplyEnv(t *testing.T) {
	cfg := *Default()

	same := cfg.ApplyEnv(func(string) string { return "" })
	assert.Equal(t, provider.OpenAI, same.Provider)

	over := cfg.ApplyEnv(func(k string) string {
		if k == EnvProvider {
			return " Anthropic "
		}
		return ""
	})
	assert.Equal(t, provider.Anthropic, over.Provider)
}

func TestSpec_AppliesOverrides(t *testing.T) {
	cfg := Config{
		Provider: provider.OpenAI,
		Providers: map[provider.ID]Override{
			provider.OpenAI: {Model: "gpt-4o", MaxTokens: 1024, URL: "http://localhost:8080/v1/chat/completions"},
		},
	}

	spec, err := cfg.Spec()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", spec.Model)
	assert.Equal(t, 1024, spec.MaxTokens)
	assert.Equal(t, "http://localhost:8080/v1/chat/completions", spec.URL)
	assert.Equal(t, "OPENAI_API_KEY", spec.KeyEnv)
}

func TestSpec_UnknownProvider(t *testing.T) {
	cfg := Config{Provider: "mistral"}
	_, err := cfg.Spec()
	assert.ErrorIs(t, err, provider.ErrUnknownProvider)
}
