package analyze

import (
	"encoding/json"
	"fmt"

	"phxdiag/internal/jsonpath"
	"phxdiag/internal/models"
)

// PathProbe is the outcome of trying one extraction path against a response
type PathProbe struct {
	Path  string
	Value any
	Err   error
}

// Found reports whether the probe resolved a value
func (p PathProbe) Found() bool {
	return p.Err == nil
}

// Display renders the resolved value for terminal output
func (p PathProbe) Display() string {
	if p.Err != nil {
		return p.Err.Error()
	}
	switch v := p.Value.(type) {
	case nil:
		return "null"
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// ProbeContent runs the primary extraction path and then the known
// alternates against a decoded response. The primary path is always first;
// alternates equal to it are skipped.
func ProbeContent(root any, primary string) []PathProbe {
	paths := []string{primary}
	for _, alt := range models.AlternateExtractPaths() {
		if alt != primary {
			paths = append(paths, alt)
		}
	}

	probes := make([]PathProbe, 0, len(paths))
	for _, expr := range paths {
		value, err := jsonpath.Get(root, expr)
		probes = append(probes, PathProbe{Path: expr, Value: value, Err: err})
	}
	return probes
}

// TraceStep is one step of a step-by-step extraction walk
type TraceStep struct {
	Segment string
	OK      bool
	Note    string
}

// TraceExtraction walks expr against root segment by segment, recording what
// happened at each step. It mirrors what the UI's extractor does so a failed
// lookup can be pinned to the exact segment.
func TraceExtraction(root any, expr string) ([]TraceStep, any, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, nil, err
	}

	steps := make([]TraceStep, 0, len(path))
	current := root
	for _, seg := range path {
		value, stepErr := jsonpath.Extract(current, jsonpath.Path{seg})
		step := TraceStep{Segment: seg.String(), OK: stepErr == nil}
		if stepErr != nil {
			step.Note = stepErr.Error()
			steps = append(steps, step)
			return steps, nil, stepErr
		}

		step.Note = describeValue(value)
		steps = append(steps, step)
		current = value
	}

	return steps, current, nil
}

// describeValue summarizes a resolved value for trace output
func describeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", truncateString(val, 80))
	case map[string]any:
		return fmt.Sprintf("mapping with %d keys", len(val))
	case []any:
		return fmt.Sprintf("sequence of %d", len(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}

func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
