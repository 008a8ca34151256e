package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"phxdiag/internal/api"
	"phxdiag/internal/config"
	"phxdiag/internal/phoenix"
)

var errFake = errors.New("simulated failure")

// ============================================================================
// Test fixtures and helpers
// ============================================================================

const standardResponseJSON = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "claude-4-sonnet",
	"choices": [{
		"index": 0,
		"message": {"role": "assistant", "content": "Hello there"},
		"finish_reason": "stop"
	}],
	"usage": {"prompt_tokens": 5, "completion_tokens": 3, "total_tokens": 8}
}`

const textOnlyResponseJSON = `{
	"id": "chatcmpl-2",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "claude-4-sonnet",
	"choices": [{
		"index": 0,
		"text": "Hello there",
		"finish_reason": "stop"
	}],
	"usage": {"prompt_tokens": 5, "completion_tokens": 3, "total_tokens": 8}
}`

const emptyChoiceResponseJSON = `{
	"id": "chatcmpl-3",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "claude-4-sonnet",
	"choices": [{"index": 0, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 5, "completion_tokens": 0, "total_tokens": 5}
}`

// isolateEnv points HOME at a temp dir and clears every variable the
// config loader reads, so tests never see the developer's real settings.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"INFERENCE_URL", "INFERENCE_KEY", "PHOENIX_URL",
		"PHXDIAG_MODEL", "PHXDIAG_MAX_TOKENS", "PHXDIAG_PLACEHOLDER_TEXT",
		"PHXDIAG_EXTRACT_PATH", "PHXDIAG_LOG_LEVEL", "PHXDIAG_VERBOSE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// writeFixture writes JSON to a temp file and returns its path
func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "response.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// withMockCompleter swaps the API client factory for the given mock
func withMockCompleter(t *testing.T, mock *api.MockClient) {
	t.Helper()
	old := newCompleter
	newCompleter = func(cfg config.Config) (api.Completer, error) {
		return mock, nil
	}
	t.Cleanup(func() { newCompleter = old })
}

// withMockStore swaps the trace store factory for the given mock
func withMockStore(t *testing.T, mock *phoenix.MockStore) {
	t.Helper()
	old := newTraceStore
	newTraceStore = func(cfg config.Config) (phoenix.TraceStore, error) {
		return mock, nil
	}
	t.Cleanup(func() { newTraceStore = old })
}

// runCommand executes the root command with args and captures its output
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(resetFlags)

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores flag variables shared across tests
func resetFlags() {
	inferenceURLFlag = ""
	phoenixURLFlag = ""
	modelFlag = ""
	maxTokensFlag = 0
	logLevelFlag = ""
	verboseFlag = false
	probePromptFlag = "Say hello in JSON format"
	debugPromptFlag = "Say hello in plain text"
	analyzeFileFlag = ""
	analyzePathFlag = ""
	extractFileFlag = ""
	normalizeFileFlag = ""
	normalizePlaceholderFlag = ""
	suggestFileFlag = ""
	suggestCopyFlag = false
}
