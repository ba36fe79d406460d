package screens

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names, the way the API knows them
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FormError lists the fields a form rejected before anything was sent
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range []string{"email", "name", "password"} {
		if msg, ok := e.Fields[field]; ok {
			parts = append(parts, fmt.Sprintf("%s %s", field, msg))
		}
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

// ValidateForm checks a form payload against its validate tags
func ValidateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	formErr := &FormError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		formErr.Fields[fe.Field()] = describe(fe)
	}
	return formErr
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
