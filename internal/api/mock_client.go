package api

import (
	"encoding/json"

	"phxdiag/internal/models"
)

// MockClient is a mock implementation of Completer for testing
type MockClient struct {
	// Mock return values
	EndpointVal string
	ModelVal    string
	Response    *models.ChatResponse
	Raw         []byte
	CompleteErr error
	StreamLines []string
	StreamErr   error
	CurlVal     string

	// Call recorders
	CompleteCalled bool
	LastRequest    models.ChatRequest
	LastPrompt     string
}

// Ensure MockClient implements Completer
var _ Completer = (*MockClient)(nil)

func (m *MockClient) Endpoint() string {
	if m.EndpointVal != "" {
		return m.EndpointVal
	}
	return models.DefaultInferenceURL + models.PathChatCompletions
}

func (m *MockClient) Model() string {
	if m.ModelVal != "" {
		return m.ModelVal
	}
	return models.DefaultModel
}

func (m *MockClient) NewRequest(prompt string) models.ChatRequest {
	return models.ChatRequest{
		Model:     m.Model(),
		Messages:  []models.ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens: models.DefaultMaxTokens,
	}
}

func (m *MockClient) ChatCompletion(prompt string) (*models.ChatResponse, []byte, error) {
	m.LastPrompt = prompt
	return m.Complete(m.NewRequest(prompt))
}

func (m *MockClient) Complete(req models.ChatRequest) (*models.ChatResponse, []byte, error) {
	m.CompleteCalled = true
	m.LastRequest = req
	if m.CompleteErr != nil {
		return nil, nil, m.CompleteErr
	}

	raw := m.Raw
	if raw == nil && m.Response != nil {
		raw, _ = json.Marshal(m.Response)
	}
	resp := m.Response
	if resp == nil && raw != nil {
		resp = &models.ChatResponse{}
		_ = json.Unmarshal(raw, resp)
	}
	return resp, raw, nil
}

func (m *MockClient) StreamProbe(req models.ChatRequest, maxChunks int) ([]string, error) {
	if m.StreamErr != nil {
		return nil, m.StreamErr
	}
	if len(m.StreamLines) > maxChunks {
		return m.StreamLines[:maxChunks], nil
	}
	return m.StreamLines, nil
}

func (m *MockClient) CurlEquivalent(req models.ChatRequest) string {
	return m.CurlVal
}
