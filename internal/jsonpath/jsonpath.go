// Package jsonpath implements the dotted/bracket path grammar used to
// address values inside decoded JSON, e.g. "choices[0].message.content".
//
// The grammar is deliberately small: a single deterministic path per lookup,
// no wildcards, no filters, no multi-match. Paths are parsed once into a
// Path and evaluated against values produced by encoding/json
// (map[string]any, []any, string, float64, bool, nil).
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"

	pxerrors "phxdiag/internal/errors"
)

// Segment is one step of a Path: either a mapping key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// String returns the textual form of the segment.
func (s Segment) String() string {
	if s.IsIndex {
		return fmt.Sprintf("[%d]", s.Index)
	}
	return s.Key
}

// Path is an ordered sequence of segments. Segment order is fixed at parse
// time and never mutated.
type Path []Segment

// String reassembles the path into its textual form.
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			fmt.Fprintf(&sb, "[%d]", seg.Index)
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Key)
	}
	return sb.String()
}

// Parse converts a textual path expression into a Path.
//
// The expression is split on '.'; each piece strips one or more trailing
// "[N]" groups, emitting a key segment for the leading name (if non-empty)
// followed by one index segment per group, in left-to-right textual order.
// A piece consisting solely of digits is itself an index segment, which
// supports leading bare indices ("0.text"). An empty expression parses to an
// empty Path; extraction with an empty Path returns the root unchanged.
func Parse(expr string) (Path, error) {
	if expr == "" {
		return Path{}, nil
	}

	var path Path
	for _, piece := range strings.Split(expr, ".") {
		if piece == "" {
			return nil, pxerrors.NewPathSyntaxError(expr, "empty segment")
		}

		name, indices, err := splitBrackets(expr, piece)
		if err != nil {
			return nil, err
		}

		if name != "" {
			if idx, ok := parseBareIndex(name); ok {
				path = append(path, Segment{Index: idx, IsIndex: true})
			} else {
				path = append(path, Segment{Key: name})
			}
		}
		for _, idx := range indices {
			path = append(path, Segment{Index: idx, IsIndex: true})
		}
	}

	return path, nil
}

// splitBrackets peels trailing "[N]" groups off a piece, returning the
// leading name and the indices in textual order.
func splitBrackets(expr, piece string) (string, []int, error) {
	open := strings.IndexByte(piece, '[')
	if open == -1 {
		if strings.ContainsRune(piece, ']') {
			return "", nil, pxerrors.NewPathSyntaxError(expr, fmt.Sprintf("unmatched ']' in %q", piece))
		}
		return piece, nil, nil
	}

	name := piece[:open]
	rest := piece[open:]

	var indices []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, pxerrors.NewPathSyntaxError(expr, fmt.Sprintf("unexpected text after bracket group in %q", piece))
		}
		closing := strings.IndexByte(rest, ']')
		if closing == -1 {
			return "", nil, pxerrors.NewPathSyntaxError(expr, fmt.Sprintf("unmatched '[' in %q", piece))
		}
		digits := rest[1:closing]
		idx, ok := parseBareIndex(digits)
		if !ok {
			return "", nil, pxerrors.NewPathSyntaxError(expr, fmt.Sprintf("invalid index %q in %q", digits, piece))
		}
		indices = append(indices, idx)
		rest = rest[closing+1:]
	}

	return name, indices, nil
}

// parseBareIndex reports whether s is a non-negative decimal index.
func parseBareIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// Extract walks root along the path and returns the value it addresses.
//
// A key segment requires the current value to be a mapping; an absent key
// fails with a KeyNotFoundError, while a key present with a null value
// resolves successfully to nil. An index segment requires a sequence and
// fails with an IndexOutOfRangeError past the end. Applying a segment to a
// value of the wrong kind fails with a TypeMismatchError. Extraction
// short-circuits on the first failure and never mutates the input.
func Extract(root any, path Path) (any, error) {
	current := root
	for i, seg := range path {
		at := path[:i].String()
		if seg.IsIndex {
			seq, ok := current.([]any)
			if !ok {
				return nil, pxerrors.NewTypeMismatchError("sequence", kindOf(current), at)
			}
			if seg.Index >= len(seq) {
				return nil, pxerrors.NewIndexOutOfRangeError(seg.Index, len(seq), at)
			}
			current = seq[seg.Index]
			continue
		}

		obj, ok := current.(map[string]any)
		if !ok {
			return nil, pxerrors.NewTypeMismatchError("mapping", kindOf(current), at)
		}
		value, present := obj[seg.Key]
		if !present {
			return nil, pxerrors.NewKeyNotFoundError(seg.Key, at)
		}
		current = value
	}
	return current, nil
}

// Get parses expr and extracts it from root in one call.
func Get(root any, expr string) (any, error) {
	path, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return Extract(root, path)
}

// GetString extracts expr from root and asserts the result is a string.
func GetString(root any, expr string) (string, bool) {
	value, err := Get(root, expr)
	if err != nil {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// kindOf names the JSON kind of a decoded value for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case string:
		return "string"
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	default:
		return fmt.Sprintf("%T", v)
	}
}
