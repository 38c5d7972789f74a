package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ivan51987/dentista-backend/db"
	"github.com/ivan51987/dentista-backend/models"
	"github.com/ivan51987/dentista-backend/scheduling"
	"github.com/ivan51987/dentista-backend/utils"
)

// GetAllAppointments lists appointments with optional date range, dentist,
// status and patient-name filters, paginated and ordered by date.
func GetAllAppointments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := db.DB.Model(&models.Appointment{}).
		Joins("JOIN patients ON patients.id = appointments.patient_id")

	if startDate := c.Query("start_date"); startDate != "" {
		if endDate := c.Query("end_date"); endDate != "" {
			query = query.Where("appointments.date BETWEEN ? AND ?", startDate, endDate)
		}
	}
	if dentistID := c.Query("dentist_id"); dentistID != "" {
		query = query.Where("appointments.dentist_id = ?", dentistID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("appointments.status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("patients.first_name ILIKE ? OR patients.last_name ILIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var appointments []models.Appointment
	if err := query.
		Preload("Patient").Preload("Dentist").Preload("Treatment").
		Order("appointments.date ASC").
		Limit(limit).Offset(offset).
		Find(&appointments).Error; err != nil {
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
		"total":        total,
		"page":         page,
		"limit":        limit,
		"pages":        (int(total) + limit - 1) / limit,
	})
}

// GetAppointment returns a single appointment by ID.
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Patient").Preload("Dentist").Preload("Treatment").
		First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment.Sanitize())
}

// GetAvailability returns the ordered free slots for (dentist, date,
// treatment). Responses are cached briefly; booking mutations invalidate the
// dentist's day, and the booking path re-validates anyway.
func GetAvailability(c *fiber.Ctx) error {
	dentistID := uint(c.QueryInt("dentist_id"))
	treatmentID := uint(c.QueryInt("treatment_id"))
	dateStr := c.Query("date")

	if dentistID == 0 || treatmentID == 0 || dateStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "dentist_id, treatment_id and date are required",
		})
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date, expected YYYY-MM-DD",
			Error:   err.Error(),
		})
	}

	var treatment models.Treatment
	if err := db.DB.First(&treatment, treatmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Treatment not found",
			Error:   err.Error(),
		})
	}

	cacheKey := utils.AvailabilityCacheKey(dentistID, dateStr, treatmentID)
	if cached := utils.GetCachedAvailability(cacheKey); cached != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	svc := scheduling.New(scheduling.NewGormStore(db.DB))
	slots, err := svc.AvailableSlots(dentistID, date, time.Duration(treatment.Duration)*time.Minute)
	if err != nil {
		return utils.FailWith(c, "Failed to compute availability", err)
	}

	payload, err := json.Marshal(fiber.Map{"slots": slots})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to encode availability",
			Error:   err.Error(),
		})
	}
	utils.CacheAvailability(cacheKey, payload)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// CreateAppointment books a new appointment. The availability check runs
// inside the same transaction as the insert, with the dentist row locked, so
// two concurrent requests for the same window cannot both succeed.
func CreateAppointment(c *fiber.Ctx) error {
	var input struct {
		PatientID   uint      `json:"patient_id"`
		DentistID   uint      `json:"dentist_id"`
		TreatmentID uint      `json:"treatment_id"`
		Date        time.Time `json:"date"`
		Notes       string    `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Date.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "date is required",
		})
	}

	var treatment models.Treatment
	if err := db.DB.First(&treatment, input.TreatmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Treatment not found",
			Error:   err.Error(),
		})
	}

	var patient models.Patient
	if err := db.DB.First(&patient, input.PatientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	appointment := models.Appointment{
		PatientID:   input.PatientID,
		DentistID:   input.DentistID,
		TreatmentID: input.TreatmentID,
		Date:        input.Date,
		Duration:    treatment.Duration,
		Notes:       input.Notes,
		Status:      models.StatusPending,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		svc := scheduling.New(scheduling.NewLockedStore(tx))
		available, err := svc.IsAvailable(input.DentistID, input.Date,
			time.Duration(treatment.Duration)*time.Minute, 0)
		if err != nil {
			return err
		}
		if !available {
			return fmt.Errorf("%w: dentist is not available at this time", scheduling.ErrConflict)
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return utils.FailWith(c, "Failed to create appointment", err)
	}

	utils.InvalidateAvailability(appointment.DentistID, appointment.Date.Format("2006-01-02"))

	if err := db.DB.Preload("Patient").Preload("Dentist").Preload("Treatment").
		First(&appointment, appointment.ID).Error; err != nil {
		utils.GetLogger().Warn("failed to reload appointment after booking",
			zap.Uint("appointment_id", appointment.ID), zap.Error(err))
	}
	appointment.Sanitize()
	go utils.SendAppointmentNotification(appointment, utils.NotifyCreation)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// RescheduleAppointment moves a pending appointment to a new time and/or
// dentist, re-validating availability while excluding its own interval.
func RescheduleAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var input struct {
		Date      *time.Time `json:"date"`
		DentistID *uint      `json:"dentist_id"`
		Notes     *string    `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := scheduling.CanReschedule(appointment.Status); err != nil {
		return utils.FailWith(c, "Only pending appointments can be rescheduled", err)
	}

	oldDentistID := appointment.DentistID
	oldDay := appointment.Date.Format("2006-01-02")

	// The status is re-checked on a locked row inside the transaction: a
	// cancellation committing after the read above must not be overwritten.
	var timingChanged bool
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, appointment.ID).Error; err != nil {
			return err
		}
		if err := scheduling.CanReschedule(appointment.Status); err != nil {
			return err
		}

		newDate := appointment.Date
		if input.Date != nil {
			newDate = *input.Date
		}
		newDentistID := appointment.DentistID
		if input.DentistID != nil {
			newDentistID = *input.DentistID
		}
		timingChanged = !newDate.Equal(appointment.Date) || newDentistID != appointment.DentistID

		if timingChanged {
			svc := scheduling.New(scheduling.NewLockedStore(tx))
			available, err := svc.IsAvailable(newDentistID, newDate,
				time.Duration(appointment.Duration)*time.Minute, appointment.ID)
			if err != nil {
				return err
			}
			if !available {
				return fmt.Errorf("%w: dentist is not available at this time", scheduling.ErrConflict)
			}
		}

		appointment.Date = newDate
		appointment.DentistID = newDentistID
		if input.Notes != nil {
			appointment.Notes = *input.Notes
		}
		return tx.Save(&appointment).Error
	})
	if err != nil {
		return utils.FailWith(c, "Failed to reschedule appointment", err)
	}

	if timingChanged {
		utils.InvalidateAvailability(oldDentistID, oldDay)
		utils.InvalidateAvailability(appointment.DentistID, appointment.Date.Format("2006-01-02"))
	}

	if err := db.DB.Preload("Patient").Preload("Dentist").Preload("Treatment").
		First(&appointment, appointment.ID).Error; err != nil {
		utils.GetLogger().Warn("failed to reload appointment after reschedule",
			zap.Uint("appointment_id", appointment.ID), zap.Error(err))
	}
	appointment.Sanitize()
	if timingChanged {
		go utils.SendAppointmentNotification(appointment, utils.NotifyUpdate)
	}

	return c.JSON(appointment)
}

// CancelAppointment transitions a pending appointment to cancelled, freeing
// its slot. Cancelling twice is a conflict.
func CancelAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var input struct {
		Reason string `json:"reason"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to parse request body",
				Error:   err.Error(),
			})
		}
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Patient").Preload("Dentist").Preload("Treatment").
		First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := scheduling.CanCancel(appointment.Status); err != nil {
		return utils.FailWith(c, "Appointment cannot be cancelled", err)
	}

	appointment.CancellationReason = input.Reason
	if appointment.CancellationReason == "" {
		appointment.CancellationReason = "No reason provided"
	}
	if err := appointment.UpdateStatus(db.DB, models.StatusCancelled); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}

	utils.InvalidateAvailability(appointment.DentistID, appointment.Date.Format("2006-01-02"))
	appointment.Sanitize()
	go utils.SendAppointmentNotification(appointment, utils.NotifyCancellation)

	return c.JSON(fiber.Map{
		"message":     "Appointment cancelled successfully",
		"appointment": appointment,
	})
}

// CompleteAppointment marks a pending appointment as completed.
func CompleteAppointment(c *fiber.Ctx) error {
	return finishAppointment(c, models.StatusCompleted, "Appointment marked as completed")
}

// NoShowAppointment marks a pending appointment as a no-show.
func NoShowAppointment(c *fiber.Ctx) error {
	return finishAppointment(c, models.StatusNoShow, "Appointment marked as no-show")
}

func finishAppointment(c *fiber.Ctx, status models.AppointmentStatus, message string) error {
	id := c.Params("id")

	var input struct {
		Notes string `json:"notes"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to parse request body",
				Error:   err.Error(),
			})
		}
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if appointment.Status != models.StatusPending {
		return utils.FailWith(c, fmt.Sprintf("Cannot update appointment with status %s", appointment.Status),
			fmt.Errorf("%w: appointment is %s", scheduling.ErrInvalidState, appointment.Status))
	}

	if input.Notes != "" {
		appointment.Notes = input.Notes
	}
	if err := appointment.UpdateStatus(db.DB, status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}

	if status == models.StatusCompleted {
		// Completed visits refresh the patient's last-visit timestamp.
		db.DB.Model(&models.Patient{}).Where("id = ?", appointment.PatientID).
			Update("last_visit", appointment.Date)
	}

	return c.JSON(fiber.Map{
		"message":     message,
		"appointment": appointment,
	})
}

// DeleteAppointment removes an appointment and its history entirely.
// Admin-only; regular workflows cancel instead.
func DeleteAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Unscoped().Delete(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete appointment",
			Error:   err.Error(),
		})
	}

	utils.InvalidateAvailability(appointment.DentistID, appointment.Date.Format("2006-01-02"))

	return c.SendStatus(fiber.StatusNoContent)
}

// RecordPayment registers a payment against an appointment and rolls the
// appointment's payment status forward.
func RecordPayment(c *fiber.Ctx) error {
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.Preload("Treatment").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	var payment models.Payment
	if err := c.BodyParser(&payment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := utils.ValidateStruct(&payment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid payment",
			Error:   err.Error(),
		})
	}
	payment.AppointmentID = appointment.ID

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		var paid float64
		if err := tx.Model(&models.Payment{}).
			Where("appointment_id = ? AND status != ?", appointment.ID, "refunded").
			Select("COALESCE(SUM(amount), 0)").Scan(&paid).Error; err != nil {
			return err
		}

		status := models.PaymentPartial
		if paid >= appointment.Treatment.Cost {
			status = models.PaymentCompleted
		}
		return tx.Model(&appointment).Update("payment_status", status).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to record payment",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// GetPayments lists the payments recorded for an appointment.
func GetPayments(c *fiber.Ctx) error {
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	var payments []models.Payment
	if err := db.DB.Where("appointment_id = ?", appointment.ID).
		Order("created_at ASC").Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch payments",
			Error:   err.Error(),
		})
	}

	return c.JSON(payments)
}
