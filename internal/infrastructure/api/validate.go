package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

var validate = validator.New()

// checkDraft runs form-level validation before any network call. A failing
// draft never reaches the wire; the error carries one display-ready message
// per failing field.
func checkDraft(draft any) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return &domain.RequestError{
			Kind:    domain.KindValidation,
			Message: strings.Join(msgs, "; "),
			Err:     err,
		}
	}
	return err
}

// fieldError converts a single validation error into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
