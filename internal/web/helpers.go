package web

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// FormatValidationErrors flattens an ozzo validation error into a
// field→message map the form templates can render next to each input.
func FormatValidationErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			if fieldErr != nil {
				out[field] = fieldErr.Error()
			}
		}
		return out
	}

	out["form"] = err.Error()
	return out
}
