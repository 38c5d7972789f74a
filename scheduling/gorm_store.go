package scheduling

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ivan51987/dentista-backend/models"
)

// GormStore reads dentist schedules and pending appointments from Postgres.
//
// With ForUpdate set the dentist's user row is locked (SELECT ... FOR UPDATE)
// when the schedule is resolved, which serializes concurrent bookings for the
// same dentist: two requests racing for the same window queue on the row lock
// and the loser re-reads the winner's committed appointment. Booking writes
// must therefore run IsAvailable through a ForUpdate store inside the same
// transaction as the insert. Read-only availability queries use an unlocked
// store; staleness is tolerated because the booking attempt re-validates.
type GormStore struct {
	DB        *gorm.DB
	ForUpdate bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// NewLockedStore returns a store for use inside a booking transaction.
func NewLockedStore(tx *gorm.DB) *GormStore {
	return &GormStore{DB: tx, ForUpdate: true}
}

func (g *GormStore) DentistSchedule(dentistID uint) (models.WeekSchedule, error) {
	q := g.DB.Where("role = ?", models.RoleDentist)
	if g.ForUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dentist models.User
	if err := q.First(&dentist, dentistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: dentist %d", ErrNotFound, dentistID)
		}
		return nil, err
	}
	return dentist.Schedule(), nil
}

func (g *GormStore) PendingIntervals(dentistID uint, from, to time.Time, excludeID uint) ([]Interval, error) {
	q := g.DB.Model(&models.Appointment{}).
		Where("dentist_id = ? AND status = ?", dentistID, models.StatusPending).
		Where("date < ? AND (date + duration * interval '1 minute') > ?", to, from).
		Order("date ASC")
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}

	var appointments []models.Appointment
	if err := q.Find(&appointments).Error; err != nil {
		return nil, err
	}

	intervals := make([]Interval, 0, len(appointments))
	for _, a := range appointments {
		intervals = append(intervals, Interval{Start: a.Date, End: a.End()})
	}
	return intervals, nil
}
