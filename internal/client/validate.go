package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type courseInput struct {
	Title string `validate:"required"`
}

// validateInput runs struct validation and reports the first failed field as ErrValidation
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	case "oneof":
		return fmt.Errorf("%w: %s must be one of %s", ErrValidation, field, fe.Param())
	default:
		return fmt.Errorf("%w: %s is invalid", ErrValidation, field)
	}
}
