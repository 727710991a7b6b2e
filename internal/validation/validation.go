// Package validation runs declarative per-request field constraints before a
// handler executes. Constraints are declared as `validate` struct tags on the
// request DTOs; all violations are collected and reported together rather than
// stopping at the first.
package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"itemhub/internal/apierr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under the field's JSON name, not the Go name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" || name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

// Check validates a request struct, returning one FieldError per violated constraint
func Check(req interface{}) []apierr.FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apierr.FieldError{{Field: "body", Message: "Invalid request"}}
	}
	details := make([]apierr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apierr.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return details
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fe.Field() + " must be at least " + fe.Param() + " characters"
		}
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fe.Field() + " must be at most " + fe.Param() + " characters"
		}
		return fe.Field() + " must be at most " + fe.Param()
	case "alphanum":
		return fe.Field() + " may only contain letters and numbers"
	default:
		return fe.Field() + " is invalid"
	}
}

// BindJSON decodes the request body into req and validates it. A malformed body
// or any violated constraint yields a VALIDATION_ERROR carrying field details.
func BindJSON(c *gin.Context, req interface{}) *apierr.Error {
	if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
		return apierr.ValidationFailed(apierr.FieldError{Field: "body", Message: "Invalid JSON body"})
	}
	if details := Check(req); len(details) > 0 {
		return apierr.ValidationFailed(details...)
	}
	return nil
}

// BindQuery binds query parameters into req and validates it
func BindQuery(c *gin.Context, req interface{}) *apierr.Error {
	if err := c.ShouldBindQuery(req); err != nil {
		return apierr.ValidationFailed(apierr.FieldError{Field: "query", Message: "Invalid query parameters"})
	}
	if details := Check(req); len(details) > 0 {
		return apierr.ValidationFailed(details...)
	}
	return nil
}
