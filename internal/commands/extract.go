package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"phxdiag/internal/jsonpath"
	"phxdiag/internal/report"
)

var extractFileFlag string

// extractCmd evaluates one extraction path against a JSON document
var extractCmd = &cobra.Command{
	Use:   "extract [path]",
	Short: "Extract a value from response JSON by dotted path",
	Long: `extract evaluates a dotted path with [N] index suffixes, the same
grammar the UI's renderer uses, against a JSON document read from a
file or stdin. Scalars print bare; objects and arrays print as JSON.
Failures name the exact segment that did not resolve.

Examples:
  phxdiag extract -f resp.json choices[0].message.content
  cat resp.json | phxdiag extract choices[0].text`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		expr := cfg.DefaultExtractPath
		if len(args) > 0 {
			expr = args[0]
		}

		raw, err := readInput(extractFileFlag, cmd.InOrStdin())
		if err != nil {
			return err
		}

		var root any
		if err := json.Unmarshal(raw, &root); err != nil {
			return fmt.Errorf("input is not valid JSON: %w", err)
		}

		value, err := jsonpath.Get(root, expr)
		if err != nil {
			return err
		}

		printValue(cmd, value)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractFileFlag, "file", "f", "", "Response JSON file (default: stdin)")
}

// printValue prints scalars bare and everything else as indented JSON
func printValue(cmd *cobra.Command, value any) {
	switch v := value.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case nil:
		fmt.Fprintln(cmd.OutOrStdout(), "null")
	case bool, float64:
		fmt.Fprintf(cmd.OutOrStdout(), "%v\n", v)
	default:
		report.NewPrinter(cmd.OutOrStdout()).JSON(v)
	}
}
