package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
)

type Appointment struct {
	gorm.Model
	PatientID          uint              `json:"patient_id"`
	Patient            Patient           `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DentistID          uint              `json:"dentist_id"`
	Dentist            User              `json:"dentist,omitempty" gorm:"foreignKey:DentistID"`
	TreatmentID        uint              `json:"treatment_id"`
	Treatment          Treatment         `json:"treatment,omitempty" gorm:"foreignKey:TreatmentID"`
	Date               time.Time         `json:"date"`
	Duration           int               `json:"duration"` // minutes, copied from the treatment at booking time
	Status             AppointmentStatus `json:"status"`
	Notes              string            `json:"notes"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
	ReminderSent       bool              `json:"reminder_sent" gorm:"default:false"`
	PaymentStatus      PaymentStatus     `json:"payment_status" gorm:"default:pending"`

	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:AppointmentID"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = PaymentPending
	}
	return nil
}

// Sanitize strips credential fields from preloaded associations so the
// appointment can be serialized safely.
func (a *Appointment) Sanitize() *Appointment {
	a.Dentist.Password = ""
	return a
}

// End returns the exclusive end of the appointment's time interval.
func (a *Appointment) End() time.Time {
	return a.Date.Add(time.Duration(a.Duration) * time.Minute)
}

// CanTransition checks the lifecycle rules: pending is the only non-terminal
// status, and it may move to cancelled, completed or no-show.
func (a *Appointment) CanTransition(newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusPending:
		if newStatus != StatusCancelled && newStatus != StatusCompleted && newStatus != StatusNoShow {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	default:
		return fmt.Errorf("unknown status %s", a.Status)
	}
	return nil
}

// UpdateStatus applies a lifecycle transition and persists it.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if err := a.CanTransition(newStatus); err != nil {
		return err
	}

	a.Status = newStatus
	if err := tx.Save(a).Error; err != nil {
		return err
	}
	return nil
}
