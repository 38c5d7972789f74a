package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/db"
	"github.com/ivan51987/dentista-backend/models"
	"github.com/ivan51987/dentista-backend/utils"
)

// GetAllPatients lists patients with pagination and free-text search over
// name, email and phone.
func GetAllPatients(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := db.DB.Model(&models.Patient{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR dni ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	query.Count(&total)

	var patients []models.Patient
	if err := query.Limit(limit).Offset((page - 1) * limit).
		Order("last_name ASC, first_name ASC").
		Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"patients": patients,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetPatient returns a single patient by ID.
func GetPatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}

// CreatePatient registers a new patient record.
func CreatePatient(c *fiber.Ctx) error {
	patient := new(models.Patient)
	if err := c.BodyParser(patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := utils.ValidateStruct(patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Validation failed",
			Error:   err.Error(),
		})
	}

	if patient.Email != "" {
		var existing models.Patient
		if db.DB.Where("email = ?", patient.Email).First(&existing).RowsAffected > 0 {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Patient with this email already exists",
			})
		}
	}

	if err := db.DB.Create(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create patient",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(patient)
}

// UpdatePatient edits a patient's demographic and medical fields.
func UpdatePatient(c *fiber.Ctx) error {
	id := c.Params("id")

	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	input := new(models.Patient)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{}
	if input.FirstName != "" {
		updates["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		updates["last_name"] = input.LastName
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.DNI != "" {
		updates["dni"] = input.DNI
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}
	if input.BirthDate != nil {
		updates["birth_date"] = input.BirthDate
	}
	if input.Gender != "" {
		updates["gender"] = input.Gender
	}
	if input.BloodType != "" {
		updates["blood_type"] = input.BloodType
	}
	if input.Notes != "" {
		updates["notes"] = input.Notes
	}
	if input.Allergies != nil {
		updates["allergies"] = input.Allergies
	}
	if input.MedicalHistory != nil {
		updates["medical_history"] = input.MedicalHistory
	}
	if input.EmergencyContact != nil {
		updates["emergency_contact"] = input.EmergencyContact
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&patient).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update patient",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(patient)
}

// DeletePatient removes a patient (admin operation). The soft delete keeps
// appointments and records reachable for reporting.
func DeletePatient(c *fiber.Ctx) error {
	id := c.Params("id")

	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Delete(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete patient",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Patient deleted successfully",
	})
}

// GetPatientAppointments lists a patient's appointments, newest first.
func GetPatientAppointments(c *fiber.Ctx) error {
	id := c.Params("id")

	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	query := db.DB.Where("patient_id = ?", patient.ID).
		Preload("Dentist").Preload("Treatment")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("date DESC").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	for i := range appointments {
		appointments[i].Sanitize()
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
	})
}

// GetPatientBalance sums treatment costs against recorded payments across a
// patient's completed appointments.
func GetPatientBalance(c *fiber.Ctx) error {
	id := c.Params("id")

	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	var totalCost float64
	db.DB.Model(&models.Appointment{}).
		Joins("JOIN treatments ON treatments.id = appointments.treatment_id").
		Where("appointments.patient_id = ? AND appointments.status = ?", patient.ID, models.StatusCompleted).
		Select("COALESCE(SUM(treatments.cost), 0)").
		Scan(&totalCost)

	var totalPaid float64
	db.DB.Model(&models.Payment{}).
		Joins("JOIN appointments ON appointments.id = payments.appointment_id").
		Where("appointments.patient_id = ?", patient.ID).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&totalPaid)

	return c.JSON(fiber.Map{
		"patient_id": patient.ID,
		"total_cost": totalCost,
		"total_paid": totalPaid,
		"balance":    totalCost - totalPaid,
	})
}

// GetPatientStats returns visit counts and the most recent visit date.
func GetPatientStats(c *fiber.Ctx) error {
	id := c.Params("id")

	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	var completed, cancelled, noShow, upcoming int64
	db.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND status = ?", patient.ID, models.StatusCompleted).Count(&completed)
	db.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND status = ?", patient.ID, models.StatusCancelled).Count(&cancelled)
	db.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND status = ?", patient.ID, models.StatusNoShow).Count(&noShow)
	db.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND status = ? AND date > ?", patient.ID, models.StatusPending, time.Now()).
		Count(&upcoming)

	return c.JSON(fiber.Map{
		"patient_id": patient.ID,
		"completed":  completed,
		"cancelled":  cancelled,
		"no_show":    noShow,
		"upcoming":   upcoming,
		"last_visit": patient.LastVisit,
	})
}
