package models

import (
	"gorm.io/gorm"
)

type TreatmentCategory string

const (
	CategoryGeneral      TreatmentCategory = "general"
	CategoryCosmetic     TreatmentCategory = "cosmetic"
	CategoryOrthodontics TreatmentCategory = "orthodontics"
	CategorySurgery      TreatmentCategory = "surgery"
	CategoryPeriodontics TreatmentCategory = "periodontics"
	CategoryEndodontics  TreatmentCategory = "endodontics"
	CategoryPediatric    TreatmentCategory = "pediatric"
)

// TreatmentCategories lists every valid catalog category.
var TreatmentCategories = []TreatmentCategory{
	CategoryGeneral,
	CategoryCosmetic,
	CategoryOrthodontics,
	CategorySurgery,
	CategoryPeriodontics,
	CategoryEndodontics,
	CategoryPediatric,
}

type Treatment struct {
	gorm.Model
	Name           string            `json:"name" gorm:"unique" validate:"required,max=100"`
	Description    string            `json:"description"`
	Cost           float64           `json:"cost" validate:"gte=0"`
	Duration       int               `json:"duration" validate:"required,gt=0"` // minutes
	Category       TreatmentCategory `json:"category" validate:"omitempty,oneof=general cosmetic orthodontics surgery periodontics endodontics pediatric"`
	Requirements   StringList        `json:"requirements" gorm:"type:jsonb"`
	Aftercare      StringList        `json:"aftercare" gorm:"type:jsonb"`
	MaterialNeeded JSONMap           `json:"material_needed" gorm:"type:jsonb"`
	Status         string            `json:"status" gorm:"default:active"`
}
