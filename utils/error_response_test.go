package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/scheduling"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", scheduling.ErrNotFound, fiber.StatusNotFound},
		{"conflict", scheduling.ErrConflict, fiber.StatusConflict},
		{"invalid argument", scheduling.ErrInvalidArgument, fiber.StatusBadRequest},
		{"invalid state", scheduling.ErrInvalidState, fiber.StatusBadRequest},
		{"wrapped conflict", fmt.Errorf("booking: %w", scheduling.ErrConflict), fiber.StatusConflict},
		{"wrapped not found", fmt.Errorf("dentist %d: %w", 7, scheduling.ErrNotFound), fiber.StatusNotFound},
		{"unrelated error", errors.New("connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusForError(tt.err); got != tt.want {
				t.Errorf("StatusForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
