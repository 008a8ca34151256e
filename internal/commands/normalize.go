package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"phxdiag/internal/normalize"
	"phxdiag/internal/report"
)

var (
	normalizeFileFlag        string
	normalizePlaceholderFlag string
)

// normalizeCmd rewrites a response so both content conventions hold
var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Backfill text and message.content in a response",
	Long: `normalize reads a chat-completions response from a file or stdin and
rewrites each choice so that choices[N].text and
choices[N].message.content both carry the content. Choices with no
recoverable content get a placeholder so the UI renders something
instead of a blank cell. The output carries a marker field and running
it through normalize again changes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		raw, err := readInput(normalizeFileFlag, cmd.InOrStdin())
		if err != nil {
			return err
		}

		var root any
		if err := json.Unmarshal(raw, &root); err != nil {
			return fmt.Errorf("input is not valid JSON: %w", err)
		}

		placeholder := cfg.PlaceholderText
		if normalizePlaceholderFlag != "" {
			placeholder = normalizePlaceholderFlag
		}

		n := normalize.New(
			normalize.WithPlaceholder(placeholder),
			normalize.WithLogger(newLogger(cfg)),
		)

		report.NewPrinter(cmd.OutOrStdout()).JSON(n.NormalizeValue(root))
		return nil
	},
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeFileFlag, "file", "f", "", "Response JSON file (default: stdin)")
	normalizeCmd.Flags().StringVar(&normalizePlaceholderFlag, "placeholder", "", "Text to substitute when a choice has no content")
}
