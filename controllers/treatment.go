package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/db"
	"github.com/ivan51987/dentista-backend/models"
	"github.com/ivan51987/dentista-backend/utils"
)

// GetAllTreatments lists catalog entries. Inactive treatments are hidden
// unless include_inactive is set.
func GetAllTreatments(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Treatment{})
	if c.Query("include_inactive") != "true" {
		query = query.Where("status = ?", "active")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var treatments []models.Treatment
	if err := query.Order("name ASC").Find(&treatments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch treatments",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"treatments": treatments,
	})
}

// GetTreatment returns a single catalog entry by ID.
func GetTreatment(c *fiber.Ctx) error {
	id := c.Params("id")
	var treatment models.Treatment
	if err := db.DB.First(&treatment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Treatment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(treatment)
}

// GetTreatmentCategories returns the fixed category list.
func GetTreatmentCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": models.TreatmentCategories,
	})
}

// GetTreatmentsByCategory lists active treatments in one category.
func GetTreatmentsByCategory(c *fiber.Ctx) error {
	category := c.Params("category")

	known := false
	for _, cat := range models.TreatmentCategories {
		if string(cat) == category {
			known = true
			break
		}
	}
	if !known {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown treatment category",
		})
	}

	var treatments []models.Treatment
	if err := db.DB.Where("category = ? AND status = ?", category, "active").
		Order("name ASC").Find(&treatments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch treatments",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"category":   category,
		"treatments": treatments,
	})
}

// CreateTreatment adds a catalog entry. Duration drives slot generation, so
// it must be a positive number of minutes.
func CreateTreatment(c *fiber.Ctx) error {
	treatment := new(models.Treatment)
	if err := c.BodyParser(treatment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := utils.ValidateStruct(treatment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Validation failed",
			Error:   err.Error(),
		})
	}

	var existing models.Treatment
	if db.DB.Where("name = ?", treatment.Name).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Treatment with this name already exists",
		})
	}

	if err := db.DB.Create(&treatment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create treatment",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(treatment)
}

// UpdateTreatment edits a catalog entry. Existing appointments keep the
// duration they were booked with.
func UpdateTreatment(c *fiber.Ctx) error {
	id := c.Params("id")

	var treatment models.Treatment
	if err := db.DB.First(&treatment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Treatment not found",
			Error:   err.Error(),
		})
	}

	input := new(models.Treatment)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Cost > 0 {
		updates["cost"] = input.Cost
	}
	if input.Duration > 0 {
		updates["duration"] = input.Duration
	}
	if input.Category != "" {
		updates["category"] = input.Category
	}
	if input.Requirements != nil {
		updates["requirements"] = input.Requirements
	}
	if input.Aftercare != nil {
		updates["aftercare"] = input.Aftercare
	}
	if input.MaterialNeeded != nil {
		updates["material_needed"] = input.MaterialNeeded
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&treatment).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update treatment",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(treatment)
}

// DeactivateTreatment hides a treatment from new bookings without touching
// appointments that already reference it.
func DeactivateTreatment(c *fiber.Ctx) error {
	id := c.Params("id")

	var treatment models.Treatment
	if err := db.DB.First(&treatment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Treatment not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&treatment).Update("status", "inactive").Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to deactivate treatment",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Treatment deactivated successfully",
	})
}
