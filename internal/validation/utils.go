package validation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/item-service/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves, usually by calling Struct on their own tags.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a validation issue that struct tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Binder is implemented by payloads that bind themselves instead of going
// through c.Bind.
//
// Use it for path and query values: Echo's fluent binders (echo.PathParamsBinder,
// echo.QueryParamsBinder) report failures as *echo.BindingError, which names
// the offending field. The default binder only returns the strconv message.
type Binder interface {
	Bind(c echo.Context) error
}

// BindAndValidate binds the request into payload and validates it.
//
// Flow:
//  1. payloads implementing Binder bind themselves; everything else goes
//     through c.Bind (path params, query, body)
//  2. payload.Validate() applies the validation rules
//
// A body sent without a Content-Type is decoded as JSON. payload must be a
// pointer. Both binding and validation failures come back as a 422
// *errs.HTTPError carrying {field, error} pairs.
func BindAndValidate(c echo.Context, payload Validatable) error {
	var err error
	if binder, ok := payload.(Binder); ok {
		err = binder.Bind(c)
	} else {
		defaultContentType(c.Request())
		err = c.Bind(payload)
	}
	if err != nil {
		return bindError(err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewUnprocessableEntityError(msg, true, fieldErrors)
	}

	return nil
}

// defaultContentType marks a body without a Content-Type as JSON, so Echo
// decodes it instead of answering 415.
func defaultContentType(req *http.Request) {
	if req.ContentLength == 0 || req.Header.Get(echo.HeaderContentType) != "" {
		return
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
}

// bindError converts a bind failure into a 422 with field errors.
//
//   - *echo.BindingError (fluent binders) names the field directly
//   - a JSON type mismatch names the field through *json.UnmarshalTypeError
//   - any other body failure (bad syntax, trailing data) is reported on "body"
func bindError(err error) *errs.HTTPError {
	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) {
		return errs.NewUnprocessableEntityError("Validation failed", true, []errs.FieldError{{
			Field: bindingErr.Field,
			Error: "has an invalid value",
		}})
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errs.NewUnprocessableEntityError("Validation failed", true, []errs.FieldError{{
			Field: typeErr.Field,
			Error: fmt.Sprintf("must be of type %s", typeErr.Type),
		}})
	}

	message := "Invalid request body"

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		}
	}

	return errs.NewUnprocessableEntityError("Validation failed", true, []errs.FieldError{{
		Field: "body",
		Error: message,
	}})
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", err.Field(), err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
