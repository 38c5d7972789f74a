package scheduling

import (
	"fmt"

	"github.com/ivan51987/dentista-backend/models"
)

// CanCancel validates a cancellation against the appointment lifecycle.
// Cancelling an already-cancelled appointment is a conflict; the other
// terminal states reject the transition outright.
func CanCancel(status models.AppointmentStatus) error {
	switch status {
	case models.StatusPending:
		return nil
	case models.StatusCancelled:
		return fmt.Errorf("%w: appointment is already cancelled", ErrConflict)
	default:
		return fmt.Errorf("%w: appointment is %s", ErrInvalidState, status)
	}
}

// CanReschedule reports whether the appointment may still be moved; only
// pending appointments can.
func CanReschedule(status models.AppointmentStatus) error {
	if status != models.StatusPending {
		return fmt.Errorf("%w: appointment is %s", ErrInvalidState, status)
	}
	return nil
}
