package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter_Section(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Section("RESPONSE SCHEMA ANALYSIS")

	out := buf.String()
	if !strings.Contains(out, "RESPONSE SCHEMA ANALYSIS") {
		t.Errorf("section output missing title:\n%s", out)
	}
	if !strings.Contains(out, "====") {
		t.Errorf("section output missing rule:\n%s", out)
	}
}

func TestPrinter_NonTerminalWidthFallsBackTo80(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Section("WIDTH CHECK")

	for _, line := range strings.Split(buf.String(), "\n") {
		if n := strings.Count(line, "="); n > 0 && n != 80 {
			t.Errorf("rule width = %d, want 80 for a non-terminal writer", n)
		}
	}
}

func TestPrinter_CheckLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Check(true, "found content at %s", "choices[0].text")
	p.Check(false, "missing content at %s", "choices[0].message.content")

	out := buf.String()
	if !strings.Contains(out, "✅") || !strings.Contains(out, "choices[0].text") {
		t.Errorf("pass line malformed:\n%s", out)
	}
	if !strings.Contains(out, "❌") || !strings.Contains(out, "choices[0].message.content") {
		t.Errorf("fail line malformed:\n%s", out)
	}
}

func TestPrinter_RawJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.RawJSON([]byte(`{"b":1,"a":{"c":[1,2]}}`))

	out := buf.String()
	if !strings.Contains(out, "\n  \"a\"") {
		t.Errorf("raw JSON not re-indented:\n%s", out)
	}

	buf.Reset()
	p.RawJSON([]byte("not json"))
	if got := buf.String(); got != "not json\n" {
		t.Errorf("invalid JSON not printed verbatim: %q", got)
	}
}

func TestPrinter_KV(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.KV("Status code", 200)

	out := buf.String()
	if !strings.Contains(out, "Status code:") || !strings.Contains(out, "200") {
		t.Errorf("KV output malformed: %q", out)
	}
}
