// Package models defines the chat-completions wire types and the constants
// shared by the diagnostic commands.
package models

// ChatMessage is one message in a chat-completions conversation
type ChatMessage struct {
	Role    string `json:"role"` // system|user|assistant|tool
	Content string `json:"content"`
}

// ResponseFormat selects the response encoding requested from the API
type ResponseFormat struct {
	Type string `json:"type"` // "text" or "json_object"
}

// ChatRequest is an OpenAI-compatible chat-completions request
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Stream         bool            `json:"stream,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatChoice is one candidate completion. Providers disagree about where the
// displayable text lives: the standard shape is Message.Content, older
// consumers expect Text. Both are optional on the wire.
type ChatChoice struct {
	Index        int          `json:"index"`
	Text         string       `json:"text,omitempty"`
	Message      *ChatMessage `json:"message,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

// Content returns the choice's displayable text, preferring the standard
// message.content location over the legacy text field.
func (c *ChatChoice) Content() string {
	if c.Message != nil && c.Message.Content != "" {
		return c.Message.Content
	}
	return c.Text
}

// HasMessageContent reports whether the standard content location is populated
func (c *ChatChoice) HasMessageContent() bool {
	return c.Message != nil && c.Message.Content != ""
}

// Usage reports token accounting from the API
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is an OpenAI-compatible chat-completions response
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *Usage       `json:"usage,omitempty"`
}

// FirstContent returns the first choice's displayable text, or ""
func (r *ChatResponse) FirstContent() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Content()
}
