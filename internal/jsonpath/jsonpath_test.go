package jsonpath

import (
	"encoding/json"
	"errors"
	"testing"

	pxerrors "phxdiag/internal/errors"
)

// ============================================================================
// Parse Tests
// ============================================================================

func TestParse_SimpleKeys(t *testing.T) {
	path, err := Parse("a.b.c")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(path) != 3 {
		t.Fatalf("Parse() returned %d segments, want 3", len(path))
	}

	for i, want := range []string{"a", "b", "c"} {
		if path[i].IsIndex {
			t.Errorf("segment %d is an index, want key", i)
		}
		if path[i].Key != want {
			t.Errorf("segment %d key = %q, want %q", i, path[i].Key, want)
		}
	}
}

func TestParse_BracketIndices(t *testing.T) {
	path, err := Parse("choices[0].message.content")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []Segment{
		{Key: "choices"},
		{Index: 0, IsIndex: true},
		{Key: "message"},
		{Key: "content"},
	}

	if len(path) != len(want) {
		t.Fatalf("Parse() returned %d segments, want %d", len(path), len(want))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, path[i], want[i])
		}
	}
}

func TestParse_MultipleBracketGroups(t *testing.T) {
	path, err := Parse("a[1][2].b")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []Segment{
		{Key: "a"},
		{Index: 1, IsIndex: true},
		{Index: 2, IsIndex: true},
		{Key: "b"},
	}

	if len(path) != len(want) {
		t.Fatalf("Parse() returned %d segments, want %d", len(path), len(want))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, path[i], want[i])
		}
	}
}

func TestParse_BareDigitSegment(t *testing.T) {
	// "choices.0.text" is an accepted alternate spelling of "choices[0].text"
	path, err := Parse("choices.0.text")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(path) != 3 {
		t.Fatalf("Parse() returned %d segments, want 3", len(path))
	}
	if !path[1].IsIndex || path[1].Index != 0 {
		t.Errorf("segment 1 = %+v, want index 0", path[1])
	}
}

func TestParse_LeadingBareIndex(t *testing.T) {
	path, err := Parse("0.text")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(path) != 2 {
		t.Fatalf("Parse() returned %d segments, want 2", len(path))
	}
	if !path[0].IsIndex || path[0].Index != 0 {
		t.Errorf("segment 0 = %+v, want index 0", path[0])
	}
}

func TestParse_LeadingBracketGroup(t *testing.T) {
	path, err := Parse("[2]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(path) != 1 {
		t.Fatalf("Parse() returned %d segments, want 1", len(path))
	}
	if !path[0].IsIndex || path[0].Index != 2 {
		t.Errorf("segment 0 = %+v, want index 2", path[0])
	}
}

func TestParse_EmptyExpression(t *testing.T) {
	path, err := Parse("")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(path) != 0 {
		t.Errorf("Parse(\"\") returned %d segments, want 0", len(path))
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"consecutive dots", "a..b"},
		{"leading dot", ".a"},
		{"trailing dot", "a."},
		{"unmatched open bracket", "a[0"},
		{"unmatched close bracket", "a0]"},
		{"empty brackets", "a[]"},
		{"non-digit index", "a[x]"},
		{"negative index", "a[-1]"},
		{"text after bracket group", "a[0]b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.expr)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.expr)
			}
			if !errors.Is(err, pxerrors.ErrMalformedPath) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedPath", tt.expr, err)
			}
		})
	}
}

// ============================================================================
// Path String Tests
// ============================================================================

func TestPath_String_RoundTrip(t *testing.T) {
	exprs := []string{
		"choices[0].message.content",
		"a.b.c",
		"[1]",
		"a[1][2].b",
	}

	for _, expr := range exprs {
		path, err := Parse(expr)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", expr, err)
		}
		if got := path.String(); got != expr {
			t.Errorf("Parse(%q).String() = %q", expr, got)
		}
	}
}

// ============================================================================
// Extract Tests
// ============================================================================

func mustDecode(t *testing.T, data string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return v
}

func TestExtract_EmptyPathReturnsRoot(t *testing.T) {
	root := mustDecode(t, `{"a": 1}`)

	value, err := Get(root, "")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	obj, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("Get() returned %T, want map", value)
	}
	if obj["a"] != float64(1) {
		t.Errorf("root not returned unchanged: %v", obj)
	}
}

func TestExtract_NestedKey(t *testing.T) {
	root := mustDecode(t, `{"a": {"b": 5}}`)

	value, err := Get(root, "a.b")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != float64(5) {
		t.Errorf("Get(a.b) = %v, want 5", value)
	}
}

func TestExtract_SequenceIndex(t *testing.T) {
	root := mustDecode(t, `{"a": [1, 2, 3]}`)

	value, err := Get(root, "a[1]")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != float64(2) {
		t.Errorf("Get(a[1]) = %v, want 2", value)
	}
}

func TestExtract_NullValueResolvesSuccessfully(t *testing.T) {
	// A key present with a null value is a successful resolution to nil,
	// not a KeyNotFound failure.
	root := mustDecode(t, `{"a": null}`)

	value, err := Get(root, "a")
	if err != nil {
		t.Fatalf("Get() error = %v, want success", err)
	}
	if value != nil {
		t.Errorf("Get(a) = %v, want nil", value)
	}
}

func TestExtract_ChatCompletionContent(t *testing.T) {
	root := mustDecode(t, `{
		"id": "chatcmpl-123",
		"choices": [
			{"index": 0, "message": {"role": "assistant", "content": "Hello"}}
		]
	}`)

	value, err := Get(root, "choices[0].message.content")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "Hello" {
		t.Errorf("Get() = %v, want Hello", value)
	}
}

func TestExtract_KeyNotFound(t *testing.T) {
	root := mustDecode(t, `{"a": {"b": 5}}`)

	_, err := Get(root, "a.c")
	if err == nil {
		t.Fatal("Get() succeeded, want error")
	}
	if !errors.Is(err, pxerrors.ErrKeyNotFound) {
		t.Errorf("Get() error = %v, want ErrKeyNotFound", err)
	}

	var kerr *pxerrors.KeyNotFoundError
	if !errors.As(err, &kerr) {
		t.Fatalf("Get() error is %T, want *KeyNotFoundError", err)
	}
	if kerr.Key != "c" {
		t.Errorf("error key = %q, want c", kerr.Key)
	}
	if kerr.At != "a" {
		t.Errorf("error at = %q, want a", kerr.At)
	}
}

func TestExtract_IndexOutOfRange(t *testing.T) {
	root := mustDecode(t, `{"a": [1, 2, 3]}`)

	_, err := Get(root, "a[3]")
	if err == nil {
		t.Fatal("Get() succeeded, want error")
	}
	if !errors.Is(err, pxerrors.ErrIndexOutOfRange) {
		t.Errorf("Get() error = %v, want ErrIndexOutOfRange", err)
	}

	var ierr *pxerrors.IndexOutOfRangeError
	if !errors.As(err, &ierr) {
		t.Fatalf("Get() error is %T, want *IndexOutOfRangeError", err)
	}
	if ierr.Index != 3 || ierr.Length != 3 {
		t.Errorf("error = index %d length %d, want index 3 length 3", ierr.Index, ierr.Length)
	}
}

func TestExtract_TypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		data string
		expr string
	}{
		{"key into scalar", `{"a": 1}`, "a.b"},
		{"key into sequence", `{"a": [1]}`, "a.b"},
		{"index into mapping", `{"a": {"b": 1}}`, "a[0]"},
		{"index into scalar", `{"a": "text"}`, "a[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustDecode(t, tt.data)
			_, err := Get(root, tt.expr)
			if err == nil {
				t.Fatalf("Get(%q) succeeded, want error", tt.expr)
			}
			if !errors.Is(err, pxerrors.ErrTypeMismatch) {
				t.Errorf("Get(%q) error = %v, want ErrTypeMismatch", tt.expr, err)
			}
		})
	}
}

func TestExtract_ShortCircuitsOnFirstFailure(t *testing.T) {
	root := mustDecode(t, `{"a": [1]}`)

	// The index failure must surface, not a later key failure.
	_, err := Get(root, "a[5].b.c")
	if !errors.Is(err, pxerrors.ErrIndexOutOfRange) {
		t.Errorf("Get() error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestExtract_DoesNotMutateInput(t *testing.T) {
	root := mustDecode(t, `{"a": {"b": [1, 2]}}`)
	before, _ := json.Marshal(root)

	_, _ = Get(root, "a.b[9]")
	_, _ = Get(root, "a.missing")
	_, _ = Get(root, "a.b[0]")

	after, _ := json.Marshal(root)
	if string(before) != string(after) {
		t.Errorf("input mutated: before %s, after %s", before, after)
	}
}

// ============================================================================
// GetString Tests
// ============================================================================

func TestGetString(t *testing.T) {
	root := mustDecode(t, `{"choices": [{"text": "hi", "index": 0}]}`)

	if s, ok := GetString(root, "choices[0].text"); !ok || s != "hi" {
		t.Errorf("GetString(text) = %q, %v; want hi, true", s, ok)
	}
	if _, ok := GetString(root, "choices[0].index"); ok {
		t.Error("GetString(index) succeeded on a number, want false")
	}
	if _, ok := GetString(root, "choices[0].missing"); ok {
		t.Error("GetString(missing) succeeded, want false")
	}
}
