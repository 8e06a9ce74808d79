// Package validation validates request payloads.
//
// Rules live in validator struct tags on the request types; this
// package runs them and converts failures into field-level errors the
// client can act on.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/chislo/manuscripthub/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves. Typically Validate() runs validator.Struct on
// the receiver and returns validator.ValidationErrors.
type Validatable interface {
	Validate() error
}

// CustomValidationError is one validation issue that cannot be
// expressed with validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error for a slice of custom issues.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds the request body into payload and validates
// it, returning a 400 HTTPError with field errors on failure. payload
// must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError("Malformed request body", false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		customErrors, ok := err.(CustomValidationErrors)
		if !ok {
			return err.Error(), []errs.FieldError{}
		}
		for _, cerr := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: cerr.Field,
				Error: cerr.Message,
			})
		}
	}

	for _, ferr := range validationErrors {
		field := strings.ToLower(ferr.Field())
		var msg string

		switch ferr.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if ferr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", ferr.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", ferr.Param())
			}

		case "max":
			if ferr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", ferr.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", ferr.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", ferr.Param())

		case "dive":
			msg = "some items are invalid"

		default:
			if ferr.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, ferr.Tag(), ferr.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, ferr.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
