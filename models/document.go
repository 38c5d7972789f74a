package models

import (
	"gorm.io/gorm"
)

type DocumentType string

const (
	DocumentXRay         DocumentType = "xray"
	DocumentImage        DocumentType = "image"
	DocumentPrescription DocumentType = "prescription"
	DocumentReport       DocumentType = "report"
	DocumentConsent      DocumentType = "consent"
	DocumentOther        DocumentType = "other"
)

// ValidDocumentType reports whether s is a known document category.
func ValidDocumentType(s string) bool {
	switch DocumentType(s) {
	case DocumentXRay, DocumentImage, DocumentPrescription, DocumentReport, DocumentConsent, DocumentOther:
		return true
	}
	return false
}

type Document struct {
	gorm.Model
	PatientID    uint         `json:"patient_id"`
	Patient      Patient      `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	UploadedByID uint         `json:"uploaded_by_id"`
	UploadedBy   User         `json:"uploaded_by,omitempty" gorm:"foreignKey:UploadedByID"`
	Type         DocumentType `json:"type"`
	FileName     string       `json:"file_name"`
	FileType     string       `json:"file_type"`
	URL          string       `json:"url"`
	Size         int64        `json:"size"`
	Description  string       `json:"description"`
	Tags         StringList   `json:"tags" gorm:"type:jsonb"`
}
