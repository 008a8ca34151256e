package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"phxdiag/internal/config"
	"phxdiag/internal/report"
)

// configCmd shows and edits the persisted configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persisted settings",
	Long: `config without arguments prints the resolved configuration,
including environment overrides. "config set KEY VALUE" persists a
setting to the config file. The inference key is environment-only and
cannot be persisted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		p := report.NewPrinter(cmd.OutOrStdout())
		p.Section("CONFIGURATION")
		p.KV("inference_url", cfg.InferenceURL)
		p.KV("inference_key", cfg.MaskedKey())
		p.KV("phoenix_url", cfg.PhoenixURL)
		p.KV("model", cfg.Model)
		p.KV("max_tokens", cfg.MaxTokens)
		p.KV("placeholder_text", cfg.PlaceholderText)
		p.KV("default_extract_path", cfg.DefaultExtractPath)
		p.KV("log_level", cfg.LogLevel)
		p.KV("copy_to_clipboard", cfg.CopyToClipboard)

		if path, err := config.GetConfigPath(); err == nil {
			p.Plain("")
			p.Dim("config file: %s", path)
		}
		return nil
	},
}

// configSetCmd persists one setting
var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Persist one setting to the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if err := applySetting(&cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

// applySetting writes one key into cfg, validating the value
func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "inference_url":
		cfg.InferenceURL = value
	case "phoenix_url":
		cfg.PhoenixURL = value
	case "model":
		cfg.Model = value
	case "max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("max_tokens must be a positive integer, got %q", value)
		}
		cfg.MaxTokens = n
	case "placeholder_text":
		cfg.PlaceholderText = value
	case "default_extract_path":
		cfg.DefaultExtractPath = value
	case "log_level":
		cfg.LogLevel = value
	case "copy_to_clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("copy_to_clipboard must be true or false, got %q", value)
		}
		cfg.CopyToClipboard = b
	case "inference_key":
		return fmt.Errorf("inference_key is environment-only; set INFERENCE_KEY instead")
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
