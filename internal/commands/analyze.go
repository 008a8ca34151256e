package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"phxdiag/internal/analyze"
	"phxdiag/internal/config"
	"phxdiag/internal/report"
)

var (
	analyzeFileFlag string
	analyzePathFlag string
)

// analyzeCmd inspects a response's schema and traces path extraction
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report a response's schema and trace content extraction",
	Long: `analyze reads a chat-completions response from a file or stdin (or
fetches a fresh one when neither is given) and reports its shape: which
expected top-level fields are present, what keys the first choice
carries, and whether any known content location resolves. With --path it
also walks the extraction segment by segment so you can see exactly
where a lookup falls off the data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		raw, err := analyzeInput(cmd, cfg)
		if err != nil {
			return err
		}

		p := report.NewPrinter(cmd.OutOrStdout())

		p.Section("RESPONSE SCHEMA")
		schema := analyze.Schema(raw)
		if !schema.Valid {
			p.Fail("input is not valid JSON")
			return nil
		}

		p.KV("Top-level keys", schema.TopLevelKeys)
		for _, field := range schema.Fields {
			p.Check(field.Present, "%-8s %s", field.Name, field.Type)
		}

		p.Plain("")
		if schema.HasChoices {
			p.KV("Choice keys", schema.ChoiceKeys)
			p.Check(schema.HasMessageContent, "choices[0].message.content present")
			p.Check(schema.HasText, "choices[0].text present")
		} else {
			p.Fail("response has no choices array")
		}

		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return err
		}

		primary := analyzePathFlag
		if primary == "" {
			primary = cfg.DefaultExtractPath
		}

		p.Section("CONTENT PROBES")
		for _, probe := range analyze.ProbeContent(decoded, primary) {
			if probe.Found() {
				p.Pass("%s = %s", probe.Path, probe.Display())
			} else {
				p.Fail("%s: %v", probe.Path, probe.Err)
			}
		}

		if analyzePathFlag != "" {
			p.Section("EXTRACTION TRACE")
			traceSteps(p, decoded, analyzePathFlag)
		}

		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFileFlag, "file", "f", "", "Response JSON file (default: stdin, or a live request)")
	analyzeCmd.Flags().StringVar(&analyzePathFlag, "path", "", "Extraction path to trace segment by segment")
}

// analyzeInput prefers a file, then piped stdin, then a live request
func analyzeInput(cmd *cobra.Command, cfg config.Config) ([]byte, error) {
	if analyzeFileFlag != "" || stdinIsPiped() {
		return readInput(analyzeFileFlag, cmd.InOrStdin())
	}

	client, err := newCompleter(cfg)
	if err != nil {
		return nil, err
	}
	_, raw, err := client.ChatCompletion("Say hello in plain text")
	return raw, err
}

// traceSteps prints the segment-by-segment extraction walk
func traceSteps(p *report.Printer, decoded any, expr string) {
	steps, value, err := analyze.TraceExtraction(decoded, expr)
	for _, step := range steps {
		p.Check(step.OK, "%-30s %s", step.Segment, step.Note)
	}
	p.Plain("")
	if err != nil {
		p.Fail("extraction failed: %v", err)
		return
	}
	p.Pass("extracted value: %v", value)
}
