package controllers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ivan51987/dentista-backend/db"
	"github.com/ivan51987/dentista-backend/models"
	"github.com/ivan51987/dentista-backend/utils"
)

const maxDocumentSize = 10 << 20 // 10 MB

var allowedDocumentExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
}

// GetPatientDocuments lists a patient's uploaded files, optionally filtered
// by type.
func GetPatientDocuments(c *fiber.Ctx) error {
	patientID := c.Params("patientId")

	var patient models.Patient
	if err := db.DB.First(&patient, patientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	query := db.DB.Where("patient_id = ?", patient.ID).Preload("UploadedBy")
	if docType := c.Query("type"); docType != "" {
		query = query.Where("type = ?", docType)
	}

	var documents []models.Document
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch documents",
			Error:   err.Error(),
		})
	}

	for i := range documents {
		documents[i].UploadedBy.Password = ""
	}

	return c.JSON(fiber.Map{
		"documents": documents,
	})
}

// GetDocument returns a single document's metadata.
func GetDocument(c *fiber.Ctx) error {
	id := c.Params("id")

	var document models.Document
	if err := db.DB.Preload("UploadedBy").First(&document, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Document not found",
			Error:   err.Error(),
		})
	}

	document.UploadedBy.Password = ""
	return c.JSON(document)
}

// UploadDocument receives a multipart file, pushes it to Cloudinary and
// stores the metadata against the patient.
func UploadDocument(c *fiber.Ctx) error {
	patientID := c.Params("patientId")

	var patient models.Patient
	if err := db.DB.First(&patient, patientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "File is required",
			Error:   err.Error(),
		})
	}
	if fileHeader.Size > maxDocumentSize {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "File exceeds the 10MB limit",
		})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedDocumentExtensions[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unsupported file type",
		})
	}

	docType := c.FormValue("type", string(models.DocumentOther))
	if !models.ValidDocumentType(docType) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid document type",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	publicID := fmt.Sprintf("patient_%d_%s", patient.ID, uuid.New().String())
	url, err := utils.UploadToCloudinary(file, publicID, "dental-documents")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload file",
			Error:   err.Error(),
		})
	}

	document := models.Document{
		PatientID:   patient.ID,
		Type:        models.DocumentType(docType),
		FileName:    fileHeader.Filename,
		FileType:    ext,
		URL:         url,
		Size:        fileHeader.Size,
		Description: c.FormValue("description"),
	}
	if userID, ok := c.Locals("userID").(uint); ok {
		document.UploadedByID = userID
	}
	if tags := c.FormValue("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				document.Tags = append(document.Tags, trimmed)
			}
		}
	}

	if err := db.DB.Create(&document).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save document",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(document)
}

// UpdateDocument edits a document's metadata; the file itself is immutable.
func UpdateDocument(c *fiber.Ctx) error {
	id := c.Params("id")

	var document models.Document
	if err := db.DB.First(&document, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Document not found",
			Error:   err.Error(),
		})
	}

	var input struct {
		Type        *string            `json:"type"`
		Description *string            `json:"description"`
		Tags        *models.StringList `json:"tags"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{}
	if input.Type != nil {
		if !models.ValidDocumentType(*input.Type) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid document type",
			})
		}
		updates["type"] = *input.Type
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Tags != nil {
		updates["tags"] = *input.Tags
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&document).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update document",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(document)
}

// DeleteDocument removes the stored asset and its metadata.
func DeleteDocument(c *fiber.Ctx) error {
	id := c.Params("id")

	var document models.Document
	if err := db.DB.First(&document, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Document not found",
			Error:   err.Error(),
		})
	}

	// Remote deletion failures should not strand the metadata row.
	if err := utils.DeleteFromCloudinary(documentPublicID(document)); err != nil {
		utils.GetLogger().Warn("failed to delete remote asset",
			zap.Uint("document_id", document.ID), zap.Error(err))
	}

	if err := db.DB.Unscoped().Delete(&document).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete document",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Document deleted successfully",
	})
}

func documentPublicID(d models.Document) string {
	base := filepath.Base(d.URL)
	return "dental-documents/" + strings.TrimSuffix(base, filepath.Ext(base))
}
