// Package validation checks request structs against their `validate` tags and
// converts failures into field-level errors the handlers can render inline.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"reefclean/internal/types"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
	return instance
}

// Struct validates request and returns types.ValidationErrors on failure.
func Struct(request any) error {
	err := get().Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	result := make(types.ValidationErrors, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		result = append(result, types.NewValidationError(
			fieldErr.Field(),
			fieldErr.Tag(),
			message(fieldErr),
		))
	}

	return result
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		if isText(fieldErr.Kind()) {
			return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
		}
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		if isText(fieldErr.Kind()) {
			return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
		}
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fieldErr.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed on %s", fieldErr.Tag())
	}
}

func isText(kind reflect.Kind) bool {
	return kind == reflect.String
}
