// Package api provides the inference API client used by the diagnostic
// commands. It speaks the OpenAI-compatible chat-completions protocol.
package api

import (
	"fmt"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"

	"phxdiag/internal/config"
	"phxdiag/internal/models"
)

// Client is the inference API client
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	key        string
	model      string
	maxTokens  int
	log        zerolog.Logger
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithModel sets the model sent with requests
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxTokens sets the completion token cap
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithLogger sets the client logger
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new inference API client from the configuration
func NewClient(cfg config.Config, opts ...ClientOption) (*Client, error) {
	if cfg.InferenceURL == "" {
		return nil, fmt.Errorf("inference URL cannot be empty")
	}

	client := &Client{
		baseURL:   cfg.InferenceURL,
		key:       cfg.InferenceKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       zerolog.Nop(),
	}
	if client.model == "" {
		client.model = models.DefaultModel
	}
	if client.maxTokens <= 0 {
		client.maxTokens = models.DefaultMaxTokens
	}

	for _, opt := range opts {
		opt(client)
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(30),
		tls_client.WithClientProfile(profiles.Chrome_120),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	client.httpClient = httpClient

	return client, nil
}

// Endpoint returns the absolute chat-completions URL
func (c *Client) Endpoint() string {
	return c.baseURL + models.PathChatCompletions
}

// Model returns the model sent with requests
func (c *Client) Model() string {
	return c.model
}

// NewRequest builds a chat-completions request for a single user prompt
func (c *Client) NewRequest(prompt string) models.ChatRequest {
	return models.ChatRequest{
		Model:     c.model,
		Messages:  []models.ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens: c.maxTokens,
	}
}
