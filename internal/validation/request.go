package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// FieldError reports the first request field that failed validation.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e *FieldError) Error() string {
	switch e.Rule {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field, e.Param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field)
	case "timezone":
		return fmt.Sprintf("%s must be an IANA timezone", e.Field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color", e.Field)
	case "common":
		return fmt.Sprintf("%s is too common, please choose a stronger one", e.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid (%s)", e.Field, e.Rule)
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates a request struct by its validate tags and returns a
// *FieldError for the first failing field.
func Struct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	return firstFieldError(err, "")
}

// firstFieldError converts validator errors to a *FieldError. An empty name
// keeps the field name the validator reported.
func firstFieldError(err error, name string) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return err
	}

	first := vErrs[0]
	if name == "" {
		name = first.Field()
	}
	return &FieldError{Field: name, Rule: first.Tag(), Param: first.Param()}
}
