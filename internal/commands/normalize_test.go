package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"phxdiag/internal/normalize"
)

func TestNormalizeCommand_BackfillFromText(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, textOnlyResponseJSON)

	out, err := runCommand(t, "normalize", "-f", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}

	if result[normalize.ProcessedKey] != true {
		t.Error("normalized output should carry the processed marker")
	}

	choices := result["choices"].([]any)
	choice := choices[0].(map[string]any)
	message, ok := choice["message"].(map[string]any)
	if !ok {
		t.Fatal("normalized choice should have a message object")
	}
	if message["content"] != "Hello there" {
		t.Errorf("message.content = %v, want %q", message["content"], "Hello there")
	}
	if choice["text"] != "Hello there" {
		t.Errorf("text = %v, want %q", choice["text"], "Hello there")
	}
}

func TestNormalizeCommand_PlaceholderFlag(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, emptyChoiceResponseJSON)

	out, err := runCommand(t, "normalize", "-f", path, "--placeholder", "Nothing came back")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Nothing came back") {
		t.Errorf("expected custom placeholder in output, got %s", out)
	}
}

func TestNormalizeCommand_Idempotent(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, textOnlyResponseJSON)

	first, err := runCommand(t, "normalize", "-f", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	again := writeFixture(t, first)
	second, err := runCommand(t, "normalize", "-f", again)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("normalizing already-normalized output should change nothing")
	}
}

func TestNormalizeCommand_InvalidJSON(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, "{broken")

	_, err := runCommand(t, "normalize", "-f", path)
	if err == nil {
		t.Fatal("expected error for invalid JSON input")
	}
}
