package loader

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var cIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	if err := validate.RegisterValidation("cident", func(fl validator.FieldLevel) bool {
		return cIdentifier.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register cident validation: %v", err))
	}
}

// validateStruct runs the struct tag rules on v and flattens any violations
// into one error naming each offending YAML path.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, fieldPath(ve)+": "+formatValidationError(ve))
	}
	return errors.New(strings.Join(messages, "; "))
}

// fieldPath drops the Go type name that leads every namespace.
func fieldPath(ve validator.FieldError) string {
	ns := ve.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "required_if":
		return fmt.Sprintf("required when %s", ve.Param())
	case "min":
		return fmt.Sprintf("must have at least %s entries", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "endswith":
		return fmt.Sprintf("must end with %s", ve.Param())
	case "excludesall":
		return fmt.Sprintf("must not contain any of %s", ve.Param())
	case "cident":
		return "must be a C identifier"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
