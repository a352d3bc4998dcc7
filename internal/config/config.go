package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iishyfishyy/lazyshell/internal/provider"
	"github.com/iishyfishyy/lazyshell/internal/transport"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ConfigDirName  = ".lazyshell"
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"

	// EnvProvider overrides the configured provider for a shell
	EnvProvider = "LAZYSHELL_PROVIDER"
)

// Override replaces parts of a provider's built-in spec
type Override struct {
	Model     string `yaml:"model,omitempty"`
	MaxTokens int    `yaml:"max_tokens,omitempty"`
	URL       string `yaml:"url,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Provider  provider.ID              `yaml:"provider"`
	Transport transport.Kind           `yaml:"transport,omitempty"`
	Providers map[provider.ID]Override `yaml:"providers,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Provider:  provider.OpenAI,
		Transport: transport.KindHTTP,
	}
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Load reads the configuration from disk, falling back to Default when the
// file does not exist
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the configuration at path
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to disk
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(cfg, configPath)
}

// SaveFile writes the configuration to path, creating its directory
func SaveFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if a configuration file exists
func Exists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// LoadEnv loads API keys from ~/.lazyshell/.env. Variables already set in
// the environment win; a missing file is not an error.
func LoadEnv() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	err = godotenv.Load(filepath.Join(configDir, EnvFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// WithProvider returns a copy of cfg using id
func (c Config) WithProvider(id provider.ID) Config {
	c.Providers = cloneOverrides(c.Providers)
	c.Provider = id
	return c
}

// ApplyEnv returns a copy of cfg with the EnvProvider override applied. The
// value is not validated here; an unknown provider fails when a request is
// dispatched.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if v := getenv(EnvProvider); v != "" {
		return c.WithProvider(provider.ID(strings.ToLower(strings.TrimSpace(v))))
	}
	return c
}

// Toggle returns a copy of cfg switched to the next known provider. An
// unknown provider toggles to the first one.
func (c Config) Toggle() Config {
	next := provider.IDs[0]
	for i, id := range provider.IDs {
		if id == c.Provider {
			next = provider.IDs[(i+1)%len(provider.IDs)]
			break
		}
	}
	return c.WithProvider(next)
}

// Spec resolves the active provider's spec with overrides applied
func (c Config) Spec() (provider.Spec, error) {
	id, err := provider.ParseID(string(c.Provider))
	if err != nil {
		return provider.Spec{}, err
	}

	spec, err := provider.Default(id)
	if err != nil {
		return provider.Spec{}, err
	}

	if o, ok := c.Providers[id]; ok {
		if o.Model != "" {
			spec.Model = o.Model
		}
		if o.MaxTokens > 0 {
			spec.MaxTokens = o.MaxTokens
		}
		if o.URL != "" {
			spec.URL = o.URL
		}
	}

	return spec, nil
}

func cloneOverrides(m map[provider.ID]Override) map[provider.ID]Override {
	if m == nil {
		return nil
	}
	out := make(map[provider.ID]Override, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
