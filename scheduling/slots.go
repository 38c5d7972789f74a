package scheduling

import (
	"fmt"
	"time"
)

// AvailableSlots computes the ordered free slots for a dentist on the given
// date, each exactly duration long:
//
//  1. resolve the weekday's working hours (no schedule means no slots),
//  2. collect busy intervals: pending appointments plus the break,
//  3. merge them into a sorted disjoint list,
//  4. subtract them from the working window,
//  5. cut each free gap into back-to-back slots of the treatment duration,
//     dropping remainders shorter than one slot.
//
// A slot that abuts a busy interval is valid (half-open semantics). The call
// is read-only and deterministic for unchanged underlying data.
func (s *Service) AvailableSlots(dentistID uint, date time.Time, duration time.Duration) ([]Slot, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidArgument)
	}

	schedule, err := s.store.DentistSchedule(dentistID)
	if err != nil {
		return nil, err
	}

	work, brk, ok, err := dayWindow(schedule, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if !ok {
		return []Slot{}, nil
	}

	busy, err := s.store.PendingIntervals(dentistID, work.Start, work.End, 0)
	if err != nil {
		return nil, err
	}
	if brk != nil {
		busy = append(busy, *brk)
	}

	slots := []Slot{}
	for _, gap := range subtractIntervals(work, mergeIntervals(busy)) {
		for cur := gap.Start; !cur.Add(duration).After(gap.End); cur = cur.Add(duration) {
			slots = append(slots, Slot{Start: cur, End: cur.Add(duration)})
		}
	}
	return slots, nil
}
