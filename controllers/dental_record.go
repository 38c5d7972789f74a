package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/db"
	"github.com/ivan51987/dentista-backend/models"
	"github.com/ivan51987/dentista-backend/utils"
)

// GetPatientRecords lists a patient's clinical entries, newest first.
func GetPatientRecords(c *fiber.Ctx) error {
	patientID := c.Params("patientId")

	var patient models.Patient
	if err := db.DB.First(&patient, patientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	var records []models.DentalRecord
	if err := db.DB.Where("patient_id = ?", patient.ID).
		Preload("Dentist").Preload("Teeth").
		Order("date DESC").
		Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch dental records",
			Error:   err.Error(),
		})
	}

	for i := range records {
		records[i].Dentist.Password = ""
	}

	return c.JSON(fiber.Map{
		"records": records,
	})
}

// GetDentalRecord returns a single clinical entry with its teeth.
func GetDentalRecord(c *fiber.Ctx) error {
	id := c.Params("id")

	var record models.DentalRecord
	if err := db.DB.Preload("Dentist").Preload("Patient").Preload("Teeth").
		First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Dental record not found",
			Error:   err.Error(),
		})
	}

	record.Dentist.Password = ""
	return c.JSON(record)
}

// CreateDentalRecord adds a clinical entry for a patient. The authenticated
// dentist is recorded as the author.
func CreateDentalRecord(c *fiber.Ctx) error {
	patientID := c.Params("patientId")

	var patient models.Patient
	if err := db.DB.First(&patient, patientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	record := new(models.DentalRecord)
	if err := c.BodyParser(record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	record.PatientID = patient.ID
	if userID, ok := c.Locals("userID").(uint); ok {
		record.DentistID = userID
	}
	if record.Date.IsZero() {
		record.Date = time.Now()
	}

	if err := utils.ValidateStruct(record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Validation failed",
			Error:   err.Error(),
		})
	}
	for _, tooth := range record.Teeth {
		if tooth.Number < 1 || tooth.Number > 32 {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Tooth number must be between 1 and 32",
			})
		}
	}

	if err := db.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create dental record",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// UpdateDentalRecord edits a clinical entry's narrative fields.
func UpdateDentalRecord(c *fiber.Ctx) error {
	id := c.Params("id")

	var record models.DentalRecord
	if err := db.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Dental record not found",
			Error:   err.Error(),
		})
	}

	input := new(models.DentalRecord)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{}
	if input.Diagnosis != "" {
		updates["diagnosis"] = input.Diagnosis
	}
	if input.TreatmentPlan != "" {
		updates["treatment_plan"] = input.TreatmentPlan
	}
	if input.Observations != "" {
		updates["observations"] = input.Observations
	}
	if input.Procedures != nil {
		updates["procedures"] = input.Procedures
	}
	if input.Odontogram != nil {
		updates["odontogram"] = input.Odontogram
	}
	if input.Prescriptions != nil {
		updates["prescriptions"] = input.Prescriptions
	}
	if input.NextVisit != nil {
		updates["next_visit"] = input.NextVisit
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&record).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update dental record",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(record)
}

// UpsertTooth records or updates the condition of one tooth in a record.
func UpsertTooth(c *fiber.Ctx) error {
	id := c.Params("id")

	var record models.DentalRecord
	if err := db.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Dental record not found",
			Error:   err.Error(),
		})
	}

	input := new(models.Tooth)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Number < 1 || input.Number > 32 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Tooth number must be between 1 and 32",
		})
	}

	var tooth models.Tooth
	result := db.DB.Where("dental_record_id = ? AND number = ?", record.ID, input.Number).First(&tooth)
	if result.RowsAffected == 0 {
		input.DentalRecordID = record.ID
		if err := db.DB.Create(&input).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to record tooth",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(input)
	}

	if err := db.DB.Model(&tooth).Updates(map[string]interface{}{
		"condition": input.Condition,
		"surface":   input.Surface,
		"treatment": input.Treatment,
		"notes":     input.Notes,
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update tooth",
			Error:   err.Error(),
		})
	}

	return c.JSON(tooth)
}

// GetPatientRecordSummary condenses a patient's clinical history: entry
// count, latest diagnosis and the next scheduled follow-up.
func GetPatientRecordSummary(c *fiber.Ctx) error {
	patientID := c.Params("patientId")

	var patient models.Patient
	if err := db.DB.First(&patient, patientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	var total int64
	db.DB.Model(&models.DentalRecord{}).Where("patient_id = ?", patient.ID).Count(&total)

	var latest models.DentalRecord
	hasLatest := db.DB.Where("patient_id = ?", patient.ID).
		Order("date DESC").First(&latest).RowsAffected > 0

	var nextVisit *time.Time
	var upcoming models.DentalRecord
	if db.DB.Where("patient_id = ? AND next_visit > ?", patient.ID, time.Now()).
		Order("next_visit ASC").First(&upcoming).RowsAffected > 0 {
		nextVisit = upcoming.NextVisit
	}

	summary := fiber.Map{
		"patient_id":    patient.ID,
		"total_records": total,
		"next_visit":    nextVisit,
	}
	if hasLatest {
		summary["last_record_date"] = latest.Date
		summary["last_diagnosis"] = latest.Diagnosis
		summary["last_treatment_plan"] = latest.TreatmentPlan
	}

	return c.JSON(summary)
}

// GetPatientOdontogram merges each tooth's most recent state across all of a
// patient's records.
func GetPatientOdontogram(c *fiber.Ctx) error {
	patientID := c.Params("patientId")

	var patient models.Patient
	if err := db.DB.First(&patient, patientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	// Latest entry per tooth wins.
	var teeth []models.Tooth
	if err := db.DB.
		Joins("JOIN dental_records ON dental_records.id = teeth.dental_record_id").
		Where("dental_records.patient_id = ?", patient.ID).
		Order("teeth.number ASC, dental_records.date ASC").
		Find(&teeth).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch odontogram",
			Error:   err.Error(),
		})
	}

	latest := make(map[int]models.Tooth, 32)
	for _, t := range teeth {
		latest[t.Number] = t
	}

	odontogram := make([]models.Tooth, 0, len(latest))
	for number := 1; number <= 32; number++ {
		if t, ok := latest[number]; ok {
			odontogram = append(odontogram, t)
		}
	}

	return c.JSON(fiber.Map{
		"patient_id": patient.ID,
		"teeth":      odontogram,
	})
}
