package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors translates a Gin binding error into a field -> message map
// suitable for form redisplay. Non-validation errors (malformed payloads)
// map to a single form-level entry.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_form"] = "invalid request payload"
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "this field is required"
		case "email":
			out[field] = "enter a valid email address"
		case "max":
			out[field] = fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
		default:
			out[field] = "enter a valid value"
		}
	}
	return out
}
