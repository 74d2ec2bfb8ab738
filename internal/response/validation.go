package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors turns a binding error into field-level error details.
// Non-validator errors (malformed JSON and the like) collapse to a single
// "error" entry.
func ValidationErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "email":
			errs[field] = "Must be a valid email address"
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", fe.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", fe.Param())
		default:
			errs[field] = fmt.Sprintf("Failed %s validation", fe.Tag())
		}
	}
	return errs
}
