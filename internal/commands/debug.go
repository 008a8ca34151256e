package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"phxdiag/internal/analyze"
	"phxdiag/internal/api"
	"phxdiag/internal/report"
)

var debugPromptFlag string

// debugCmd runs the full expectation check against the inference API
var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Check whether API responses carry the fields the UI needs",
	Long: `debug sends a request to the inference API and verifies the response
against the conventions the UI's renderer understands: content at
choices[0].message.content (standard), choices[0].text (legacy), or a
message object to fall back on. It also probes alternate request formats
to see how they change the response shape, and prints a curl command
equivalent for manual reproduction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := newCompleter(cfg)
		if err != nil {
			return err
		}

		p := report.NewPrinter(cmd.OutOrStdout())

		// Reproduction command first so it is available even if the
		// request fails.
		p.Section("CURL COMMAND EQUIVALENT")
		p.Plain("%s", client.CurlEquivalent(client.NewRequest(debugPromptFlag)))

		p.Section("DIRECT API CALL")
		_, raw, err := client.ChatCompletion(debugPromptFlag)
		if err != nil {
			p.Fail("request failed: %v", err)
			return err
		}
		p.Pass("response received")
		p.Plain("\nFull response:")
		p.RawJSON(raw)

		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			p.Fail("response is not valid JSON: %v", err)
			return err
		}

		p.Section("UI EXPECTATIONS")
		checkExpectations(p, decoded)

		p.Section("TESTING VARIOUS REQUEST FORMATS")
		probeRequestFormats(p, client, debugPromptFlag)

		return nil
	},
}

func init() {
	debugCmd.Flags().StringVarP(&debugPromptFlag, "prompt", "p", "Say hello in plain text", "Prompt to send")
}

// checkExpectations verifies the content locations the UI knows about
func checkExpectations(p *report.Printer, decoded any) {
	probes := analyze.ProbeContent(decoded, "choices[0].message.content")

	found := false
	for _, probe := range probes {
		if probe.Found() {
			found = true
			p.Pass("found content at: %s", probe.Path)
			p.Dim("  %s", probe.Display())
		} else {
			p.Fail("missing content at: %s", probe.Path)
		}
	}

	p.Plain("")
	if found {
		p.Pass("API response contains content the UI should be able to render")
	} else {
		p.Fail("API response is missing every content field the UI looks for")
		p.Dim("  Suggestion: run responses through `phxdiag normalize`")
	}
}

// probeRequestFormats sends the request shape variants and summarizes how
// each changes the response
func probeRequestFormats(p *report.Printer, client api.Completer, prompt string) {
	for _, variant := range api.RequestVariants() {
		p.Plain("\nTesting: %s", variant.Name)
		p.Dim("----------------------------------------")

		req := client.NewRequest(prompt)
		variant.Apply(&req)

		if variant.Stream {
			chunks, err := client.StreamProbe(req, 3)
			if err != nil {
				p.Fail("stream probe failed: %v", err)
				continue
			}
			p.Pass("streaming response (first %d chunks):", len(chunks))
			for _, chunk := range chunks {
				p.Dim("  %s", chunk)
			}
			continue
		}

		_, raw, err := client.Complete(req)
		if err != nil {
			p.Fail("request failed: %v", err)
			continue
		}

		schema := analyze.Schema(raw)
		p.KV("Choice keys", schema.ChoiceKeys)
		if content, path, ok := analyze.ResponseContent(mustDecodeRaw(raw)); ok {
			p.Pass("content at %s: %s", path, content)
		} else {
			p.Fail("no content field found")
		}
	}
}

// mustDecodeRaw decodes raw JSON, returning nil on failure. Callers treat a
// nil root as an empty response.
func mustDecodeRaw(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
