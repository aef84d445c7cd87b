package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks request payloads before any network call; a violation
// short-circuits the facade operation without invoking the client.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the wire field names so the error shape
	// matches what the backend itself would return.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validatePayload returns a field-keyed error payload, or nil when the
// payload is valid.
func validatePayload(payload any) *ErrorPayload {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ErrorPayload{Message: err.Error()}
	}

	p := &ErrorPayload{Fields: make(map[string][]string, len(verrs))}
	for _, fe := range verrs {
		p.Fields[fe.Field()] = append(p.Fields[fe.Field()], validationMessage(fe))
	}
	return p
}

// validationMessage mirrors the backend's phrasing for common rules so
// local and remote validation render the same way.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fe.Value())
	default:
		return "Invalid value."
	}
}
