package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/scheduling"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// StatusForError maps the scheduling error taxonomy to HTTP statuses:
// NotFound 404, Conflict 409, InvalidArgument and InvalidState 400.
// Anything else is a 500.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, scheduling.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, scheduling.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, scheduling.ErrInvalidArgument), errors.Is(err, scheduling.ErrInvalidState):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// FailWith replies with the status derived from err and a stable message.
func FailWith(c *fiber.Ctx, message string, err error) error {
	return c.Status(StatusForError(err)).JSON(ErrorResponse{
		Message: message,
		Error:   err.Error(),
	})
}
