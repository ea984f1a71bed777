package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func DefaultMessage(field, tag string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	case "min":
		return fmt.Sprintf("%s is too short", field)
	case "max":
		return fmt.Sprintf("%s is too long", field)
	case "gte":
		return fmt.Sprintf("%s is below the minimum value", field)
	case "lte":
		return fmt.Sprintf("%s is above the maximum value", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than the minimum value", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of the allowed values", field)
	case "ph_mobile":
		return fmt.Sprintf("%s must be a valid Philippine mobile number", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Messages turns a binding or validation error into client-facing messages.
// Errors that are not validator errors, such as malformed JSON, yield a
// single generic message.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request body"}
	}

	messages := make([]string, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, e := range verrs {
		msg := DefaultMessage(e.Field(), e.Tag())
		if fieldMessages := CustomMessage(e.Field()); fieldMessages != nil {
			if custom, ok := fieldMessages[e.Tag()]; ok {
				msg = custom
			}
		}
		if !seen[msg] {
			seen[msg] = true
			messages = append(messages, msg)
		}
	}
	return messages
}
