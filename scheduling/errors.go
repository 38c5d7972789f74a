package scheduling

import "errors"

// Error taxonomy surfaced by the scheduling core. Controllers map these to
// HTTP statuses; nothing here is swallowed silently.
var (
	// ErrNotFound means a referenced entity (dentist, treatment,
	// appointment) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the candidate interval overlaps an existing
	// pending appointment, falls outside working hours, or a lifecycle
	// transition targets an already-cancelled appointment.
	ErrConflict = errors.New("conflict")

	// ErrInvalidArgument means a malformed duration or date.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState means the lifecycle transition is not permitted
	// from the appointment's current status.
	ErrInvalidState = errors.New("invalid state")
)
