package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 error, optionally with a custom
// code, field errors, and a client action.
func NewBadRequestError(message string, override bool, code *string, fieldErrors []FieldError, action *Action) *HTTPError {
	formattedCode := CodeFromStatus(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   fieldErrors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 error.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := CodeFromStatus(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 error for rate-limited clients.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeFromStatus(http.StatusTooManyRequests),
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewUnprocessableError creates a 422 error for inputs that parsed but
// cannot be acted on (unsupported upload types, empty extractions).
func NewUnprocessableError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeFromStatus(http.StatusUnprocessableEntity),
		Message: message,
		Status:  http.StatusUnprocessableEntity,
	}
}

// NewBadGatewayError creates a 502 error for upstream failures (the AI
// service, journal websites).
func NewBadGatewayError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeFromStatus(http.StatusBadGateway),
		Message: message,
		Status:  http.StatusBadGateway,
	}
}

// NewInternalServerError creates a generic 500. The real cause stays in
// the logs; clients get the bare status text.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     CodeFromStatus(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a validation failure into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}
