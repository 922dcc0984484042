// Package validator wraps struct validation behind a package-level
// instance so handlers share one compiled rule cache.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks the struct tags on s.
func Validate(s any) error {
	return validate.Struct(s)
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Explain converts a validation failure into per-field entries for
// error responses. A non-validation error yields a single generic
// entry.
func Explain(err error) []ValidationError {
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Field: "", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			msg = "is too short (min " + fe.Param() + ")"
		case "max":
			msg = "is too long (max " + fe.Param() + ")"
		default:
			msg = "is invalid"
		}
		out = append(out, ValidationError{Field: fe.Field(), Message: msg})
	}
	return out
}
