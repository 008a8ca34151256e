package commands

import (
	"errors"
	"strings"
	"testing"

	pxerrors "phxdiag/internal/errors"
)

func TestExtractCommand_MessageContent(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, standardResponseJSON)

	out, err := runCommand(t, "extract", "-f", path, "choices[0].message.content")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "Hello there" {
		t.Errorf("expected bare string output, got %q", out)
	}
}

func TestExtractCommand_DefaultPath(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, standardResponseJSON)

	out, err := runCommand(t, "extract", "-f", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Hello there") {
		t.Errorf("default path should resolve message content, got %q", out)
	}
}

func TestExtractCommand_ConfiguredDefaultPath(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PHXDIAG_EXTRACT_PATH", "choices[0].text")
	path := writeFixture(t, textOnlyResponseJSON)

	out, err := runCommand(t, "extract", "-f", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "Hello there" {
		t.Errorf("configured default path should resolve the text field, got %q", out)
	}
}

func TestExtractCommand_ObjectAsJSON(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, standardResponseJSON)

	out, err := runCommand(t, "extract", "-f", path, "choices[0].message")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"content": "Hello there"`) {
		t.Errorf("expected indented JSON object, got %q", out)
	}
	if !strings.Contains(out, `"role": "assistant"`) {
		t.Errorf("expected role field in output, got %q", out)
	}
}

func TestExtractCommand_KeyNotFound(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, textOnlyResponseJSON)

	_, err := runCommand(t, "extract", "-f", path, "choices[0].message.content")
	if err == nil {
		t.Fatal("expected error for missing key")
	}
	if !errors.Is(err, pxerrors.ErrKeyNotFound) {
		t.Errorf("expected key-not-found error, got %v", err)
	}
}

func TestExtractCommand_MalformedPath(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, standardResponseJSON)

	_, err := runCommand(t, "extract", "-f", path, "choices[0")
	if err == nil {
		t.Fatal("expected error for malformed path")
	}
	if !errors.Is(err, pxerrors.ErrMalformedPath) {
		t.Errorf("expected malformed-path error, got %v", err)
	}
}

func TestExtractCommand_InvalidJSON(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t, "not json at all")

	_, err := runCommand(t, "extract", "-f", path, "choices")
	if err == nil {
		t.Fatal("expected error for invalid JSON input")
	}
	if !strings.Contains(err.Error(), "not valid JSON") {
		t.Errorf("expected JSON parse error, got %v", err)
	}
}
