package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names so the error map matches the
	// payload the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct evaluates the validate tags on payload and returns a map
// of field name to every failing rule's message. Returns nil when the
// payload is valid.
func ValidateStruct(payload interface{}) map[string][]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError means the payload itself was not a
		// struct; treat it as a single opaque failure.
		return map[string][]string{"payload": {"invalid request payload"}}
	}

	errors := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		errors[field] = append(errors[field], validationMessage(field, fe))
	}
	return errors
}

func validationMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("The %s is not a valid date.", field)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
