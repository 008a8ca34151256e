// Package errors provides typed error values shared across phxdiag.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the path extraction taxonomy. All are recoverable
// result values; nothing in this package is process-fatal.
var (
	ErrMalformedPath   = errors.New("malformed path expression")
	ErrKeyNotFound     = errors.New("key not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrTypeMismatch    = errors.New("type mismatch")
)

// PathSyntaxError reports a path expression that violates the grammar.
type PathSyntaxError struct {
	Expr   string
	Reason string
}

func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("malformed path %q: %s", e.Expr, e.Reason)
}

// Is allows comparison with the ErrMalformedPath sentinel
func (e *PathSyntaxError) Is(target error) bool {
	if target == ErrMalformedPath {
		return true
	}
	_, ok := target.(*PathSyntaxError)
	return ok
}

// NewPathSyntaxError creates a new PathSyntaxError
func NewPathSyntaxError(expr, reason string) *PathSyntaxError {
	return &PathSyntaxError{Expr: expr, Reason: reason}
}

// KeyNotFoundError reports a mapping lookup for an absent key. At is the
// textual path prefix resolved before the failing segment.
type KeyNotFoundError struct {
	Key string
	At  string
}

func (e *KeyNotFoundError) Error() string {
	if e.At == "" {
		return fmt.Sprintf("key %q not found", e.Key)
	}
	return fmt.Sprintf("key %q not found at %s", e.Key, e.At)
}

// Is allows comparison with the ErrKeyNotFound sentinel
func (e *KeyNotFoundError) Is(target error) bool {
	if target == ErrKeyNotFound {
		return true
	}
	_, ok := target.(*KeyNotFoundError)
	return ok
}

// NewKeyNotFoundError creates a new KeyNotFoundError
func NewKeyNotFoundError(key, at string) *KeyNotFoundError {
	return &KeyNotFoundError{Key: key, At: at}
}

// IndexOutOfRangeError reports a sequence lookup past the end.
type IndexOutOfRangeError struct {
	Index  int
	Length int
	At     string
}

func (e *IndexOutOfRangeError) Error() string {
	if e.At == "" {
		return fmt.Sprintf("index %d out of range (length %d)", e.Index, e.Length)
	}
	return fmt.Sprintf("index %d out of range (length %d) at %s", e.Index, e.Length, e.At)
}

// Is allows comparison with the ErrIndexOutOfRange sentinel
func (e *IndexOutOfRangeError) Is(target error) bool {
	if target == ErrIndexOutOfRange {
		return true
	}
	_, ok := target.(*IndexOutOfRangeError)
	return ok
}

// NewIndexOutOfRangeError creates a new IndexOutOfRangeError
func NewIndexOutOfRangeError(index, length int, at string) *IndexOutOfRangeError {
	return &IndexOutOfRangeError{Index: index, Length: length, At: at}
}

// TypeMismatchError reports a segment applied to a value of the wrong kind,
// e.g. indexing into a mapping or keying into a sequence.
type TypeMismatchError struct {
	Want string
	Got  string
	At   string
}

func (e *TypeMismatchError) Error() string {
	if e.At == "" {
		return fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
	}
	return fmt.Sprintf("type mismatch at %s: want %s, got %s", e.At, e.Want, e.Got)
}

// Is allows comparison with the ErrTypeMismatch sentinel
func (e *TypeMismatchError) Is(target error) bool {
	if target == ErrTypeMismatch {
		return true
	}
	_, ok := target.(*TypeMismatchError)
	return ok
}

// NewTypeMismatchError creates a new TypeMismatchError
func NewTypeMismatchError(want, got, at string) *TypeMismatchError {
	return &TypeMismatchError{Want: want, Got: got, At: at}
}

// APIError represents an inference or trace API request failure
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message}
}

// NewAPIErrorWithBody creates an APIError carrying the response body for diagnostics
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message, Body: body}
}

// NetworkError represents a transport-level failure before any HTTP status
// was received.
type NetworkError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s at %s: %v", e.Op, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(op, endpoint string, err error) *NetworkError {
	return &NetworkError{Op: op, Endpoint: endpoint, Err: err}
}

// GetHTTPStatus extracts the HTTP status from an error chain, or 0.
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from an error chain, or "".
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// GetResponseBody extracts the captured response body from an error chain, or "".
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}

// IsPathError reports whether err belongs to the path extraction taxonomy.
func IsPathError(err error) bool {
	return errors.Is(err, ErrMalformedPath) ||
		errors.Is(err, ErrKeyNotFound) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrTypeMismatch)
}
