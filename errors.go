package ho

import (
	"fmt"
	"strings"
)

// TemplateParseError reports malformed or ambiguous placeholder syntax in a
// URL template. It is raised at compile time and is fatal to that
// compilation call.
type TemplateParseError struct {
	Template string
	Reason   string
}

// Error returns the parse failure message.
func (e *TemplateParseError) Error() string {
	return fmt.Sprintf("parse template %q: %s", e.Template, e.Reason)
}

// SpecValidationError reports a document-mode entry with invalid shape,
// naming the offending path and method.
type SpecValidationError struct {
	Path   string
	Method string
	Reason string
	Err    error
}

// Error returns the validation failure message.
func (e *SpecValidationError) Error() string {
	return fmt.Sprintf("spec entry %s %s: %s", e.Method, e.Path, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *SpecValidationError) Unwrap() error { return e.Err }

// MissingParameterError reports a required parameter that was not supplied
// at call time.
type MissingParameterError struct {
	Name string
}

// Error returns the missing-parameter message.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Name)
}

// UnknownParameterError reports an argument name that does not appear in
// the operation's parameter list.
type UnknownParameterError struct {
	Name string
}

// Error returns the unknown-parameter message.
func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q", e.Name)
}

// TypeMismatchError reports a value that cannot be coerced to a
// parameter's declared type.
type TypeMismatchError struct {
	Name  string
	Type  ParamType
	Value any
}

// Error returns the coercion failure message.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("parameter %q: cannot coerce %v to %s", e.Name, e.Value, e.Type)
}

// DuplicateOperationError reports two document entries resolving to the
// same (method, path) registry key.
type DuplicateOperationError struct {
	Method string
	Path   string
}

// Error returns the duplicate-key message.
func (e *DuplicateOperationError) Error() string {
	return fmt.Sprintf("duplicate operation %s %s", e.Method, e.Path)
}

// NameCollisionError reports two distinct registry keys deriving the same
// namespace identifier.
type NameCollisionError struct {
	Name   string
	First  OperationKey
	Second OperationKey
}

// Error returns the collision message naming both source keys.
func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("name %q collides: %s %s and %s %s",
		e.Name, e.First.Method, e.First.Path, e.Second.Method, e.Second.Path)
}

// UnknownIdentifierError reports a namespace lookup for an identifier that
// was not derived from any registered operation.
type UnknownIdentifierError struct {
	Name string
}

// Error returns the lookup failure message.
func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("no operation named %q", e.Name)
}

// TransportError wraps a transport-level failure that no error hook
// handled.
type TransportError struct {
	Err error
}

// Error returns the transport failure message.
func (e *TransportError) Error() string { return "transport: " + e.Err.Error() }

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError reports a response status >= 400 that no error hook
// handled. Body holds the raw response body text.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

// Error returns the status failure message with a truncated body excerpt.
func (e *HTTPStatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, body)
}
