// Package scheduling reconciles a dentist's working hours against booked
// appointments: it validates candidate bookings for overlap and computes the
// free slots for a day. It holds no state of its own; persistence is behind
// the Store interface so the logic runs the same against Postgres or an
// in-memory fake.
package scheduling

import (
	"time"

	"github.com/ivan51987/dentista-backend/models"
)

// Store is the persistence collaborator the scheduling core reads through.
type Store interface {
	// DentistSchedule returns the dentist's weekly working hours
	// (the clinic default when unconfigured). Returns ErrNotFound when no
	// such dentist exists.
	DentistSchedule(dentistID uint) (models.WeekSchedule, error)

	// PendingIntervals returns the time intervals of all pending
	// appointments for the dentist intersecting [from, to), excluding the
	// appointment with excludeID when non-zero.
	PendingIntervals(dentistID uint, from, to time.Time, excludeID uint) ([]Interval, error)
}

// Service implements the availability checks and slot generation over a Store.
type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// dayWindow resolves the working and break intervals of the schedule's
// weekday onto the given date. ok is false when the dentist does not work
// that day.
func dayWindow(schedule models.WeekSchedule, date time.Time) (work Interval, brk *Interval, ok bool, err error) {
	day := schedule.ForDate(date)
	if day == nil {
		return Interval{}, nil, false, nil
	}

	work.Start, err = models.AtDate(day.Start, date)
	if err != nil {
		return Interval{}, nil, false, err
	}
	work.End, err = models.AtDate(day.End, date)
	if err != nil {
		return Interval{}, nil, false, err
	}

	if day.BreakStart != "" && day.BreakEnd != "" {
		var b Interval
		b.Start, err = models.AtDate(day.BreakStart, date)
		if err != nil {
			return Interval{}, nil, false, err
		}
		b.End, err = models.AtDate(day.BreakEnd, date)
		if err != nil {
			return Interval{}, nil, false, err
		}
		brk = &b
	}
	return work, brk, true, nil
}
