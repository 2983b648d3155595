package services

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError turns validator output into a client-facing validation error.
func ValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.Wrap(apperror.KindValidation, err, "Validation failed")
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return apperror.Validation("Validation failed: %s", strings.Join(messages, "; "))
}

// notFound gives repository not-found errors a kind and message; other errors
// pass through and surface as unexpected.
func notFound(err error, message string) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.Wrap(apperror.KindNotFound, err, message)
	}
	return err
}
