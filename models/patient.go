package models

import (
	"time"

	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	FirstName        string     `json:"first_name" validate:"required,max=50"`
	LastName         string     `json:"last_name" validate:"required,max=50"`
	DNI              string     `json:"dni" gorm:"unique" validate:"omitempty,max=20"`
	Email            string     `json:"email" gorm:"unique" validate:"omitempty,email"`
	Phone            string     `json:"phone" validate:"omitempty,max=20"`
	BirthDate        *time.Time `json:"birth_date"`
	Gender           string     `json:"gender" validate:"omitempty,oneof=male female other"`
	Address          string     `json:"address" validate:"omitempty,max=200"`
	Allergies        StringList `json:"allergies" gorm:"type:jsonb"`
	BloodType        string     `json:"blood_type" validate:"omitempty,max=5"`
	MedicalHistory   JSONMap    `json:"medical_history" gorm:"type:jsonb"`
	EmergencyContact JSONMap    `json:"emergency_contact" gorm:"type:jsonb"`
	Status           string     `json:"status" gorm:"default:active"`
	LastVisit        *time.Time `json:"last_visit"`
	Notes            string     `json:"notes"`

	Appointments  []Appointment  `json:"appointments,omitempty" gorm:"foreignKey:PatientID"`
	DentalRecords []DentalRecord `json:"dental_records,omitempty" gorm:"foreignKey:PatientID"`
	Documents     []Document     `json:"documents,omitempty" gorm:"foreignKey:PatientID"`
}
