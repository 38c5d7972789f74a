package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleDentist      UserRole = "dentist"
	RoleAssistant    UserRole = "assistant"
	RoleReceptionist UserRole = "receptionist"
)

// ValidRole reports whether s is one of the known staff roles.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case RoleAdmin, RoleDentist, RoleAssistant, RoleReceptionist:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Email          string        `json:"email" gorm:"unique"`
	Password       string        `json:"password,omitempty"`
	Role           UserRole      `json:"role"`
	Specialization string        `json:"specialization"`
	WorkingHours   *WeekSchedule `json:"working_hours,omitempty" gorm:"type:jsonb"`
	Status         string        `json:"status" gorm:"default:active"`
	RefreshToken   string        `json:"-"`
	ResetToken     string        `json:"-"`
	ResetExpires   *time.Time    `json:"-"`
	LastLogin      *time.Time    `json:"last_login,omitempty"`

	Appointments  []Appointment  `json:"appointments,omitempty" gorm:"foreignKey:DentistID"`
	DentalRecords []DentalRecord `json:"dental_records,omitempty" gorm:"foreignKey:DentistID"`
}

// Schedule returns the dentist's configured weekly schedule, falling back to
// the clinic default when none has been set.
func (u *User) Schedule() WeekSchedule {
	if u.WorkingHours == nil || len(*u.WorkingHours) == 0 {
		return DefaultWeekSchedule()
	}
	return *u.WorkingHours
}
