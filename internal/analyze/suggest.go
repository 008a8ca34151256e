package analyze

import (
	"fmt"
	"strings"

	"phxdiag/internal/jsonpath"
	"phxdiag/internal/models"
)

// EnvVar is one suggested environment variable
type EnvVar struct {
	Key     string
	Value   string
	Comment string
}

// Suggestion is the configuration the UI should run with, derived from an
// observed response shape.
type Suggestion struct {
	EnvVars []EnvVar
	// NeedsTransformer is true when the response lacks the standard
	// message.content location and the UI needs the normalizer in front
	// of it.
	NeedsTransformer bool
}

// SuggestConfig derives UI configuration from a decoded response. maskedKey
// is the already-masked API key for display.
func SuggestConfig(resp any, inferenceURL, maskedKey, model string) Suggestion {
	_, err := jsonpath.Get(resp, models.DefaultExtractPath)
	hasStandard := err == nil

	var s Suggestion
	s.NeedsTransformer = !hasStandard

	s.EnvVars = append(s.EnvVars,
		EnvVar{Key: "OPENAI_API_KEY", Value: "Bearer " + maskedKey, Comment: "Basic API configuration"},
		EnvVar{Key: "OPENAI_BASE_URL", Value: inferenceURL + "/v1"},
		EnvVar{Key: "PHOENIX_MODEL_NAME", Value: model},
	)

	if hasStandard {
		s.EnvVars = append(s.EnvVars, EnvVar{
			Key:     "PHOENIX_OPENAI_EXTRACT_CONTENT_PATH",
			Value:   models.DefaultExtractPath,
			Comment: "Content extraction",
		})
	} else {
		s.EnvVars = append(s.EnvVars, EnvVar{
			Key:     "PHOENIX_OPENAI_EXTRACT_CONTENT_PATH",
			Value:   "choices[0].text",
			Comment: "Non-standard response format detected; a response transformer is also needed",
		})
	}

	s.EnvVars = append(s.EnvVars,
		EnvVar{Key: "PHOENIX_LLM_TRACE_MESSAGE_CONTENT", Value: "true", Comment: "Additional helpful settings"},
		EnvVar{Key: "PHOENIX_LLM_ENABLE_CONTENT_CAPTURE", Value: "true"},
		EnvVar{Key: "PHOENIX_TRACE_DEBUG", Value: "true"},
	)

	return s
}

// RenderExports renders the suggestion as shell export lines
func (s Suggestion) RenderExports() string {
	var sb strings.Builder
	for _, env := range s.EnvVars {
		if env.Comment != "" {
			fmt.Fprintf(&sb, "# %s\n", env.Comment)
		}
		fmt.Fprintf(&sb, "export %s=%q\n", env.Key, env.Value)
	}
	if s.NeedsTransformer {
		sb.WriteString("# Run responses through `phxdiag normalize` before handing them to the UI\n")
	}
	return sb.String()
}
