package commands

import (
	"strings"
	"testing"
)

func TestSuggestCommand_StandardShape(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, standardResponseJSON)

	out, err := runCommand(t, "suggest", "-f", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, `export PHOENIX_OPENAI_EXTRACT_CONTENT_PATH="choices[0].message.content"`) {
		t.Errorf("expected standard extract path export, got:\n%s", out)
	}
	if strings.Contains(out, "phxdiag normalize") {
		t.Error("standard shape should not need the normalizer")
	}
}

func TestSuggestCommand_TextOnlyShape(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, textOnlyResponseJSON)

	out, err := runCommand(t, "suggest", "-f", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, `export PHOENIX_OPENAI_EXTRACT_CONTENT_PATH="choices[0].text"`) {
		t.Errorf("expected legacy extract path export, got:\n%s", out)
	}
	if !strings.Contains(out, "phxdiag normalize") {
		t.Error("non-standard shape should recommend the normalizer")
	}
}

func TestSuggestCommand_MasksKey(t *testing.T) {
	isolateEnv(t)
	t.Setenv("INFERENCE_KEY", "inf-key-1234567890")
	path := writeFixture(t, standardResponseJSON)

	out, err := runCommand(t, "suggest", "-f", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(out, "inf-key-1234567890") {
		t.Error("full key must never appear in output")
	}
	if !strings.Contains(out, "inf-k...") {
		t.Errorf("expected masked key, got:\n%s", out)
	}
}
