package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"phxdiag/internal/report"
)

var probePromptFlag string

// probeCmd sends a single request and dumps the response
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Send one chat-completions request and print the raw response",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		p := report.NewPrinter(cmd.OutOrStdout())
		p.Plain("Starting probe")
		p.KV("INFERENCE_URL", cfg.InferenceURL)
		p.KV("INFERENCE_KEY", cfg.MaskedKey())

		client, err := newCompleter(cfg)
		if err != nil {
			return err
		}

		p.Plain("Sending request to %s...", client.Endpoint())

		start := time.Now()
		resp, raw, err := client.ChatCompletion(probePromptFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, report.FormatError(err, "Request failed"))
			return err
		}

		if cfg.Verbose {
			p.Dim("[verbose] Request took %s", time.Since(start).Round(time.Millisecond))
			p.Dim("[verbose] Choices: %d", len(resp.Choices))
		}

		p.Plain("Response:")
		p.RawJSON(raw)
		p.Plain("Probe completed")
		return nil
	},
}

func init() {
	probeCmd.Flags().StringVarP(&probePromptFlag, "prompt", "p", "Say hello in JSON format", "Prompt to send")
}
