package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks an entity before it is handed to the mutation feed.
// Failures wrap ErrInvalidInput.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %s", ErrInvalidInput, describe(fieldErrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	switch e := v.(type) {
	case Week:
		return validateWeekSpan(e)
	case *Week:
		return validateWeekSpan(*e)
	}
	return nil
}

// ISO dates order lexically.
func validateWeekSpan(w Week) error {
	if w.WeekEnds < w.WeekStarts {
		return fmt.Errorf("%w: weekEnds %s before weekStarts %s", ErrInvalidInput, w.WeekEnds, w.WeekStarts)
	}
	return nil
}

func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
