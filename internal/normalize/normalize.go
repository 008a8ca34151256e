// Package normalize backfills equivalent alternate content fields on
// chat-completion responses so that consumers looking at either
// choices[i].text or choices[i].message.content find displayable text.
package normalize

import (
	"github.com/rs/zerolog"
)

// ProcessedKey is the top-level sentinel attribute marking a response that
// already went through normalization. Responses carrying it are returned
// unchanged, which makes Normalize idempotent without reinspecting fields.
const ProcessedKey = "__phxdiag_normalized__"

// DefaultPlaceholder is used when a choice has neither a text field nor a
// message.content field.
const DefaultPlaceholder = "No content available"

// Normalizer applies the content backfill policy to decoded responses.
type Normalizer struct {
	placeholder string
	log         zerolog.Logger
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithPlaceholder sets the text substituted when a choice has no content
func WithPlaceholder(text string) Option {
	return func(n *Normalizer) {
		if text != "" {
			n.placeholder = text
		}
	}
}

// WithLogger sets the logger used for warning-level observations
func WithLogger(log zerolog.Logger) Option {
	return func(n *Normalizer) {
		n.log = log
	}
}

// New creates a Normalizer with the default placeholder and a disabled logger.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		placeholder: DefaultPlaceholder,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns a normalized copy of resp. It never fails: inputs it
// cannot improve are returned as-is, and malformed choices are skipped with
// a warning. The caller's maps are not mutated; the result shares unchanged
// substructure with the input.
//
// Policy per choice:
//  1. message.content present, text absent: text is backfilled.
//  2. text present, message.content missing or malformed: message is rebuilt
//     as {role: assistant, content: text}.
//  3. neither present: both are set to the placeholder.
//  4. both present already: left untouched.
func (n *Normalizer) Normalize(resp map[string]any) map[string]any {
	if resp == nil {
		return nil
	}
	if processed, ok := resp[ProcessedKey].(bool); ok && processed {
		return resp
	}

	out := make(map[string]any, len(resp)+1)
	for k, v := range resp {
		out[k] = v
	}
	out[ProcessedKey] = true

	choices, ok := resp["choices"].([]any)
	if !ok || len(choices) == 0 {
		if _, present := resp["choices"]; present && !ok {
			n.log.Warn().Msg("choices field is not a sequence, leaving response as-is")
		}
		return out
	}

	normalized := make([]any, len(choices))
	for i, raw := range choices {
		choice, ok := raw.(map[string]any)
		if !ok {
			n.log.Warn().Int("choice", i).Msgf("choice is not an object (%T), skipping", raw)
			normalized[i] = raw
			continue
		}
		normalized[i] = n.normalizeChoice(i, choice)
	}
	out["choices"] = normalized

	return out
}

// NormalizeValue normalizes any decoded JSON value. Values that are not
// objects pass through unchanged.
func (n *Normalizer) NormalizeValue(v any) any {
	if obj, ok := v.(map[string]any); ok {
		return n.Normalize(obj)
	}
	n.log.Warn().Msgf("response is not an object (%T), skipping normalization", v)
	return v
}

// normalizeChoice applies the backfill policy to a single choice, returning
// a shallow copy when a change is needed and the original otherwise.
func (n *Normalizer) normalizeChoice(i int, choice map[string]any) map[string]any {
	content, hasContent := messageContent(choice)
	text, hasText := choice["text"].(string)

	switch {
	case hasContent && hasText:
		// Already satisfies both conventions.
		return choice

	case hasContent:
		out := copyChoice(choice)
		out["text"] = content
		n.log.Debug().Int("choice", i).Msg("backfilled text from message.content")
		return out

	case hasText:
		out := copyChoice(choice)
		out["message"] = map[string]any{
			"role":    "assistant",
			"content": text,
		}
		n.log.Debug().Int("choice", i).Msg("rebuilt message from text")
		return out

	default:
		n.log.Warn().Int("choice", i).Msg("choice has neither text nor message.content, using placeholder")
		out := copyChoice(choice)
		out["text"] = n.placeholder
		out["message"] = map[string]any{
			"role":    "assistant",
			"content": n.placeholder,
		}
		return out
	}
}

// messageContent returns the choice's message.content string if the message
// object is well-formed.
func messageContent(choice map[string]any) (string, bool) {
	message, ok := choice["message"].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := message["content"].(string)
	return content, ok
}

// copyChoice shallow-copies a choice object.
func copyChoice(choice map[string]any) map[string]any {
	out := make(map[string]any, len(choice)+2)
	for k, v := range choice {
		out[k] = v
	}
	return out
}
