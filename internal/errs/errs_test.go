package errs

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCodeFromStatus(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", CodeFromStatus(http.StatusNotFound))
	assert.Equal(t, "BAD_REQUEST", CodeFromStatus(http.StatusBadRequest))
	assert.Equal(t, "TOO_MANY_REQUESTS", CodeFromStatus(http.StatusTooManyRequests))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", CodeFromStatus(http.StatusInternalServerError))
}

func TestNewBadRequestError(t *testing.T) {
	err := NewBadRequestError("bad input", true, nil, []FieldError{{Field: "title", Error: "is required"}}, nil)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, "bad input", err.Error())
	assert.True(t, err.Override)
	assert.Len(t, err.Errors, 1)
}

func TestNewBadRequestErrorCustomCode(t *testing.T) {
	code := "TITLE_MISSING"
	err := NewBadRequestError("bad input", false, &code, nil, nil)
	assert.Equal(t, "TITLE_MISSING", err.Code)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Journal not found", false, nil)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND", err.Code)
}

func TestNewInternalServerError(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "Internal Server Error", err.Message)
	assert.False(t, err.Override)
}

func TestStatusConstructors(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, NewTooManyRequestsError("slow down").Status)
	assert.Equal(t, http.StatusUnprocessableEntity, NewUnprocessableError("cannot read file").Status)
	assert.Equal(t, http.StatusBadGateway, NewBadGatewayError("upstream down").Status)
}

func TestHTTPErrorIs(t *testing.T) {
	err := NewNotFoundError("missing", false, nil)
	wrapped := errors.Wrap(err, "handler failed")

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))
}

func TestWithMessage(t *testing.T) {
	base := NewBadGatewayError("upstream down")
	copy := base.WithMessage("AI service unavailable")

	assert.Equal(t, "AI service unavailable", copy.Message)
	assert.Equal(t, "upstream down", base.Message)
	assert.Equal(t, base.Status, copy.Status)
}

func TestValidationError(t *testing.T) {
	err := ValidationError(errors.New("title too short"))
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Contains(t, err.Message, "title too short")
}
