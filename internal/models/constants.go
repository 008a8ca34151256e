package models

// Endpoint paths
const (
	// PathChatCompletions is the inference endpoint, relative to the base URL.
	PathChatCompletions = "/v1/chat/completions"

	// PathTraces is the Phoenix trace listing endpoint, relative to the Phoenix URL.
	PathTraces = "/api/v1/llm-traces"
)

// Defaults for outbound requests
const (
	DefaultModel        = "claude-4-sonnet"
	DefaultMaxTokens    = 50
	DefaultInferenceURL = "https://us.inference.heroku.com"
	DefaultPhoenixURL   = "http://localhost:6006"
)

// Extraction paths. DefaultExtractPath is what the Phoenix UI resolves by
// default; AlternateExtractPaths are the known places providers put content.
const DefaultExtractPath = "choices[0].message.content"

// AlternateExtractPaths lists fallback locations for displayable content,
// in the order the UI tries them.
func AlternateExtractPaths() []string {
	return []string{
		"choices[0].text",
		"choices[0].message.content",
		"choices[0].message",
	}
}

// ExpectedResponseFields lists the top-level fields of a standard
// OpenAI-compatible chat-completions response.
func ExpectedResponseFields() []string {
	return []string{"id", "object", "created", "model", "choices", "usage"}
}

// TraceContentPaths lists where displayable content may live inside a
// Phoenix trace record, in fallback order.
func TraceContentPaths() []string {
	return []string{
		"outputs.content",
		"outputs.choices[0].message.content",
		"outputs.choices[0].text",
		"metadata.output_content",
	}
}

// DefaultHeaders returns the headers sent with every inference request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}
