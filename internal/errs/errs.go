// Package errs defines the error types returned to API clients.
//
// Every handler error funnels into an *HTTPError so clients always
// receive the same JSON shape: a machine code, a message, the HTTP
// status, optional field-level errors, and an optional client action.
package errs

import (
	"net/http"
	"strings"
)

// FieldError is a field-level validation error.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType describes what the client should do next.
type ActionType string

const (
	// ActionTypeRedirect tells the client to navigate to Action.Value.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional instruction attached to an error response.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the API error response schema. It satisfies error.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors,omitempty"`
	Action *Action      `json:"action,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and status are
// deliberately not compared; errors.Is is used here only for type
// classification in the global error handler.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with only the message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// CodeFromStatus converts an HTTP status into a stable machine code,
// e.g. 404 -> "NOT_FOUND".
func CodeFromStatus(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
