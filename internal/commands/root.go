// Package commands provides the phxdiag CLI commands.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"phxdiag/internal/api"
	"phxdiag/internal/config"
	"phxdiag/internal/logging"
	"phxdiag/internal/phoenix"
)

var (
	// Global flags
	inferenceURLFlag string
	phoenixURLFlag   string
	modelFlag        string
	maxTokensFlag    int
	logLevelFlag     string
	verboseFlag      bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "phxdiag",
	Short: "Diagnose chat-completions responses that the Phoenix UI fails to render",
	Long: `phxdiag debugs why an observability UI shows empty output for
chat-completions calls that clearly returned content. It sends fixed
requests to a hosted inference API, inspects the JSON response shape,
probes the extraction paths the UI uses, and can normalize responses so
both the text and message.content conventions are satisfied.

Examples:
  phxdiag probe                          Send one request and dump the response
  phxdiag debug                          Full expectation check against the API
  phxdiag analyze --path choices[0].text Schema report plus extraction trace
  phxdiag extract -f resp.json choices[0].message.content
  cat resp.json | phxdiag normalize      Backfill text/message.content fields
  phxdiag suggest                        Print suggested UI environment config
  phxdiag trace                          Compare trace capture vs live response`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("phxdiag %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&inferenceURLFlag, "inference-url", "", "Inference API base URL (overrides INFERENCE_URL)")
	rootCmd.PersistentFlags().StringVar(&phoenixURLFlag, "phoenix-url", "", "Phoenix server base URL (overrides PHOENIX_URL)")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to request (e.g., claude-4-sonnet)")
	rootCmd.PersistentFlags().IntVar(&maxTokensFlag, "max-tokens", 0, "Completion token cap for diagnostic requests")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "V", false, "Verbose request/response details")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves configuration and applies command-line overrides
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	if inferenceURLFlag != "" {
		cfg.InferenceURL = inferenceURLFlag
	}
	if phoenixURLFlag != "" {
		cfg.PhoenixURL = phoenixURLFlag
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if maxTokensFlag > 0 {
		cfg.MaxTokens = maxTokensFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if verboseFlag {
		cfg.Verbose = true
		if cfg.LogLevel == "info" {
			cfg.LogLevel = "debug"
		}
	}

	return cfg, nil
}

// newLogger builds the command logger from the resolved config
func newLogger(cfg config.Config) zerolog.Logger {
	return logging.New(cfg.LogLevel)
}

// Factory functions, replaced by mocks in tests.
var newCompleter = func(cfg config.Config) (api.Completer, error) {
	if err := cfg.RequireKey(); err != nil {
		return nil, err
	}
	return api.NewClient(cfg,
		api.WithModel(cfg.Model),
		api.WithMaxTokens(cfg.MaxTokens),
		api.WithLogger(newLogger(cfg)),
	)
}

var newTraceStore = func(cfg config.Config) (phoenix.TraceStore, error) {
	return phoenix.NewClient(cfg.PhoenixURL, newLogger(cfg))
}

// stdinIsPiped reports whether stdin carries piped data
func stdinIsPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

// readInput returns JSON bytes from a file (when path is non-empty) or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no input: pass --file or pipe JSON on stdin")
	}
	return data, nil
}
