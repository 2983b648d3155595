package handlers

import (
	"errors"
	"log"
	"strings"

	"storefront/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// Guards are the middlewares protecting authenticated and admin-only routes.
type Guards struct {
	Auth  fiber.Handler
	Admin fiber.Handler
}

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Stack      string `json:"stack,omitempty"`
}

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindAuthentication:
		return fiber.StatusUnauthorized
	case apperror.KindAuthorization:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler renders every error returned by a handler or middleware in the
// failure envelope. Unexpected errors keep their message only in development.
func NewErrorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fiberErr *fiber.Error
		var appErr *apperror.Error
		switch {
		case errors.As(err, &appErr):
			status = StatusFor(appErr.Kind)
			if appErr.Kind != apperror.KindUnexpected || development {
				message = appErr.Message
			}
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		case development:
			message = err.Error()
		}

		if status >= fiber.StatusInternalServerError {
			log.Printf("[%s %s] Error: %v", c.Method(), c.Path(), err)
		}

		body := ErrorBody{Message: message, StatusCode: status}
		if development {
			body.Stack = errorChain(err)
		}
		return c.Status(status).JSON(ErrorResponse{Success: false, Error: body})
	}
}

func errorChain(err error) string {
	var parts []string
	for ; err != nil; err = errors.Unwrap(err) {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "\n")
}

func badBody(err error) error {
	return apperror.Wrap(apperror.KindValidation, err, "Invalid request body")
}
