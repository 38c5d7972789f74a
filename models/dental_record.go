package models

import (
	"time"

	"gorm.io/gorm"
)

type ToothCondition string

const (
	ToothHealthy ToothCondition = "healthy"
	ToothDecayed ToothCondition = "decayed"
	ToothFilled  ToothCondition = "filled"
	ToothMissing ToothCondition = "missing"
	ToothCrown   ToothCondition = "crown"
	ToothBridge  ToothCondition = "bridge"
	ToothImplant ToothCondition = "implant"
)

type DentalRecord struct {
	gorm.Model
	PatientID     uint       `json:"patient_id"`
	Patient       Patient    `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DentistID     uint       `json:"dentist_id"`
	Dentist       User       `json:"dentist,omitempty" gorm:"foreignKey:DentistID"`
	Date          time.Time  `json:"date"`
	Diagnosis     string     `json:"diagnosis" validate:"required"`
	Procedures    StringList `json:"procedures" gorm:"type:jsonb"`
	TreatmentPlan string     `json:"treatment_plan"`
	Observations  string     `json:"observations"`
	Odontogram    JSONMap    `json:"odontogram" gorm:"type:jsonb"`
	Prescriptions JSONMap    `json:"prescriptions" gorm:"type:jsonb"`
	NextVisit     *time.Time `json:"next_visit"`

	Teeth []Tooth `json:"teeth,omitempty" gorm:"foreignKey:DentalRecordID"`
}

type Tooth struct {
	gorm.Model
	DentalRecordID uint           `json:"dental_record_id"`
	Number         int            `json:"number" validate:"required,min=1,max=32"`
	Condition      ToothCondition `json:"condition" gorm:"default:healthy"`
	Surface        StringList     `json:"surface" gorm:"type:jsonb"`
	Treatment      string         `json:"treatment"`
	Notes          string         `json:"notes"`
}

// TableName overrides the generated name, which would be "tooths".
func (Tooth) TableName() string {
	return "teeth"
}
