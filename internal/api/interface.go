package api

import (
	"phxdiag/internal/models"
)

// Completer is the surface of the inference client the commands depend on.
// Commands accept this interface so tests can substitute a mock.
type Completer interface {
	Endpoint() string
	Model() string
	NewRequest(prompt string) models.ChatRequest
	ChatCompletion(prompt string) (*models.ChatResponse, []byte, error)
	Complete(req models.ChatRequest) (*models.ChatResponse, []byte, error)
	StreamProbe(req models.ChatRequest, maxChunks int) ([]string, error)
	CurlEquivalent(req models.ChatRequest) string
}

// Ensure Client implements Completer
var _ Completer = (*Client)(nil)
