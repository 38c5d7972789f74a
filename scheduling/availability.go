package scheduling

import (
	"fmt"
	"time"
)

// IsAvailable reports whether the dentist can take a booking of the given
// duration starting at start. The candidate must lie entirely inside the
// weekday's working window, must not intersect the break, and must not
// overlap any pending appointment. excludeID skips the appointment being
// rescheduled so it does not conflict with itself. The check is read-only;
// callers booking a slot must re-run it inside the same transaction as the
// write.
func (s *Service) IsAvailable(dentistID uint, start time.Time, duration time.Duration, excludeID uint) (bool, error) {
	if duration <= 0 {
		return false, fmt.Errorf("%w: duration must be positive", ErrInvalidArgument)
	}

	schedule, err := s.store.DentistSchedule(dentistID)
	if err != nil {
		return false, err
	}

	candidate := Interval{Start: start, End: start.Add(duration)}

	work, brk, ok, err := dayWindow(schedule, start)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if !ok {
		return false, nil // dentist does not work that day
	}
	if candidate.Start.Before(work.Start) || candidate.End.After(work.End) {
		return false, nil
	}
	if brk != nil && candidate.Overlaps(*brk) {
		return false, nil
	}

	booked, err := s.store.PendingIntervals(dentistID, work.Start, work.End, excludeID)
	if err != nil {
		return false, err
	}
	for _, b := range booked {
		if candidate.Overlaps(b) {
			return false, nil
		}
	}
	return true, nil
}
