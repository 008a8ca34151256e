package commands

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"phxdiag/internal/analyze"
	"phxdiag/internal/report"
)

var (
	traceSinceFlag time.Duration
	traceLimitFlag int
)

// traceCmd compares what the trace store captured with a live response
var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Compare captured trace content with a live API response",
	Long: `trace sends a fresh request to the inference API, then reads the
newest trace record from the Phoenix server and compares the content
each side carries. A mismatch or an empty trace side means the capture
pipeline drops or relocates the content before the UI sees it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := newCompleter(cfg)
		if err != nil {
			return err
		}
		store, err := newTraceStore(cfg)
		if err != nil {
			return err
		}

		p := report.NewPrinter(cmd.OutOrStdout())

		p.Section("LIVE API RESPONSE")
		_, raw, err := client.ChatCompletion("Say hello in plain text")
		if err != nil {
			p.Fail("request failed: %v", err)
			return err
		}
		var liveResp any
		if err := json.Unmarshal(raw, &liveResp); err != nil {
			return err
		}
		if content, path, ok := analyze.ResponseContent(liveResp); ok {
			p.Pass("content at %s: %s", path, content)
		} else {
			p.Fail("live response carries no content")
		}

		p.Section("CAPTURED TRACES")
		traces, err := store.ListTraces(time.Now().Add(-traceSinceFlag), traceLimitFlag)
		if err != nil {
			p.Fail("trace query failed: %v", err)
			return err
		}
		if len(traces) == 0 {
			p.Warn("no traces captured in the last %s", traceSinceFlag)
			p.Dim("  Is the UI pointed at %s?", cfg.InferenceURL)
			return nil
		}
		p.Info("found %d trace(s)", len(traces))

		newest := traces[0]
		record := newest.Data
		if newest.ID != "" {
			if full, gerr := store.GetTrace(newest.ID); gerr == nil {
				record = full
			} else {
				p.Warn("could not fetch full trace %s: %v", newest.ID, gerr)
			}
		}

		p.Section("CONTENT COMPARISON")
		comparison := analyze.CompareContent(liveResp, record)
		p.Check(comparison.APIFound, "API side: %q (at %s)", comparison.APIContent, comparison.APIPath)
		p.Check(comparison.TraceFound, "trace side: %q (at %s)", comparison.TraceContent, comparison.TracePath)

		p.Plain("")
		switch {
		case comparison.Match():
			p.Pass("trace capture preserves the response content")
		case comparison.APIFound && !comparison.TraceFound:
			p.Fail("capture pipeline drops the content before storage")
			p.Dim("  Suggestion: run `phxdiag suggest` and apply the exports")
		case comparison.APIFound && comparison.TraceFound:
			p.Warn("trace content differs from the live response")
		default:
			p.Fail("neither side carries content; check the request itself")
		}

		return nil
	},
}

func init() {
	traceCmd.Flags().DurationVar(&traceSinceFlag, "since", 5*time.Minute, "How far back to look for traces")
	traceCmd.Flags().IntVar(&traceLimitFlag, "limit", 5, "Maximum traces to list")
}
