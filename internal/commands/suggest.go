package commands

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"phxdiag/internal/analyze"
	"phxdiag/internal/report"
)

var (
	suggestFileFlag string
	suggestCopyFlag bool
)

// suggestCmd prints the environment the UI needs to render content
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest UI environment variables for the observed response shape",
	Long: `suggest inspects a response (from a file, stdin, or a live request)
and prints the environment variable exports that point the UI's
renderer at the right content path for that shape. When the response
satisfies neither convention, it also recommends routing responses
through phxdiag normalize.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var raw []byte
		if suggestFileFlag != "" || stdinIsPiped() {
			raw, err = readInput(suggestFileFlag, cmd.InOrStdin())
		} else {
			client, cerr := newCompleter(cfg)
			if cerr != nil {
				return cerr
			}
			_, raw, err = client.ChatCompletion("Say hello in plain text")
		}
		if err != nil {
			return err
		}

		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("input is not valid JSON: %w", err)
		}

		suggestion := analyze.SuggestConfig(decoded, cfg.InferenceURL, cfg.MaskedKey(), cfg.Model)
		exports := suggestion.RenderExports()

		p := report.NewPrinter(cmd.OutOrStdout())
		p.Section("SUGGESTED CONFIGURATION")
		p.Plain("%s", exports)

		if suggestCopyFlag || cfg.CopyToClipboard {
			if err := clipboard.WriteAll(exports); err != nil {
				p.Warn("could not copy to clipboard: %v", err)
			} else {
				p.Dim("(copied to clipboard)")
			}
		}

		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestFileFlag, "file", "f", "", "Response JSON file (default: stdin, or a live request)")
	suggestCmd.Flags().BoolVarP(&suggestCopyFlag, "copy", "c", false, "Copy the exports to the clipboard")
}
