package analyze

import (
	"phxdiag/internal/jsonpath"
	"phxdiag/internal/models"
)

// ResponseContent digs displayable content out of a decoded API response,
// preferring the standard message.content location then the legacy text
// field. The second return is the path that resolved.
func ResponseContent(resp any) (string, string, bool) {
	for _, expr := range []string{"choices[0].message.content", "choices[0].text"} {
		if content, ok := jsonpath.GetString(resp, expr); ok {
			return content, expr, true
		}
	}
	return "", "", false
}

// TraceContent digs displayable content out of a Phoenix trace record,
// trying the documented locations in fallback order. The second return is
// the path that resolved.
func TraceContent(trace map[string]any) (string, string, bool) {
	for _, expr := range models.TraceContentPaths() {
		if content, ok := jsonpath.GetString(trace, expr); ok {
			return content, expr, true
		}
	}
	return "", "", false
}

// Comparison is the verdict of comparing a live API response with what the
// trace store captured for the same call.
type Comparison struct {
	APIContent   string
	APIPath      string
	APIFound     bool
	TraceContent string
	TracePath    string
	TraceFound   bool
}

// Match reports whether both sides carry the same content
func (c Comparison) Match() bool {
	return c.APIFound && c.TraceFound && c.APIContent == c.TraceContent
}

// CompareContent builds the comparison between a decoded API response and a
// trace record.
func CompareContent(apiResp any, trace map[string]any) Comparison {
	var cmp Comparison
	cmp.APIContent, cmp.APIPath, cmp.APIFound = ResponseContent(apiResp)
	cmp.TraceContent, cmp.TracePath, cmp.TraceFound = TraceContent(trace)
	return cmp
}
