// Package config handles configuration for phxdiag.
//
// Settings come from three layers, later layers winning: built-in defaults,
// the config file at ~/.phxdiag/config.json, and the environment (a .env
// file in the working directory is loaded first, best effort).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"phxdiag/internal/models"
)

// Config represents the resolved configuration
type Config struct {
	// InferenceURL is the base URL of the hosted inference API.
	InferenceURL string `json:"inference_url"`
	// InferenceKey is the bearer token for the inference API. Never
	// persisted to the config file; environment only.
	InferenceKey string `json:"-"`
	// PhoenixURL is the base URL of the Phoenix trace server.
	PhoenixURL string `json:"phoenix_url"`
	// Model is the model name sent with diagnostic requests.
	Model string `json:"model"`
	// MaxTokens caps completion length for diagnostic requests.
	MaxTokens int `json:"max_tokens"`
	// PlaceholderText is substituted for choices that carry no content.
	PlaceholderText string `json:"placeholder_text"`
	// DefaultExtractPath is the path expression tried first when probing
	// for displayable content.
	DefaultExtractPath string `json:"default_extract_path"`
	// LogLevel controls diagnostic logging (trace..error).
	LogLevel string `json:"log_level"`
	// Verbose enables request timing and shape details on stderr.
	Verbose bool `json:"verbose"`
	// CopyToClipboard copies generated configuration suggestions to the
	// system clipboard.
	CopyToClipboard bool `json:"copy_to_clipboard"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		InferenceURL:       models.DefaultInferenceURL,
		PhoenixURL:         models.DefaultPhoenixURL,
		Model:              models.DefaultModel,
		MaxTokens:          models.DefaultMaxTokens,
		PlaceholderText:    "No content available",
		DefaultExtractPath: models.DefaultExtractPath,
		LogLevel:           "info",
		Verbose:            false,
		CopyToClipboard:    false,
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".phxdiag"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load resolves the configuration from defaults, config file and environment
func Load() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg
func applyEnv(cfg *Config) {
	if v := os.Getenv("INFERENCE_URL"); v != "" {
		cfg.InferenceURL = v
	}
	if v := os.Getenv("INFERENCE_KEY"); v != "" {
		cfg.InferenceKey = v
	}
	if v := os.Getenv("PHOENIX_URL"); v != "" {
		cfg.PhoenixURL = v
	}
	if v := os.Getenv("PHXDIAG_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PHXDIAG_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("PHXDIAG_PLACEHOLDER_TEXT"); v != "" {
		cfg.PlaceholderText = v
	}
	if v := os.Getenv("PHXDIAG_EXTRACT_PATH"); v != "" {
		cfg.DefaultExtractPath = v
	}
	if v := os.Getenv("PHXDIAG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PHXDIAG_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
}

// Save persists the configuration to disk. The inference key is excluded
// from serialization.
func Save(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MaskedKey returns the inference key truncated for display
func (c Config) MaskedKey() string {
	if c.InferenceKey == "" {
		return "(not set)"
	}
	if len(c.InferenceKey) <= 5 {
		return c.InferenceKey[:1] + "..."
	}
	return c.InferenceKey[:5] + "..."
}

// RequireKey fails when no inference key is configured. Commands that hit
// the network call this before building a client.
func (c Config) RequireKey() error {
	if c.InferenceKey == "" {
		return fmt.Errorf("INFERENCE_KEY environment variable not set")
	}
	return nil
}
