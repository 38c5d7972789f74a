package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ivan51987/dentista-backend/db"
	"github.com/ivan51987/dentista-backend/models"
	"github.com/ivan51987/dentista-backend/utils"
)

// StartCronJobs initializes and starts the scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Hourly sweep for appointments starting within the next 24 hours.
	_, err := c.AddFunc("0 * * * *", sendAppointmentReminders)
	if err != nil {
		utils.GetLogger().Fatal("failed to register reminder job", zap.Error(err))
	}
	c.Start()
	utils.GetLogger().Info("reminder scheduler started")
}

// sendAppointmentReminders emails patients with pending appointments in the
// next 24 hours that have not been reminded yet.
func sendAppointmentReminders() {
	now := time.Now()
	window := now.Add(24 * time.Hour)

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Dentist").Preload("Treatment").
		Where("status = ? AND reminder_sent = ? AND date BETWEEN ? AND ?",
			models.StatusPending, false, now, window).
		Find(&appointments).Error
	if err != nil {
		utils.GetLogger().Error("failed to fetch appointments for reminders", zap.Error(err))
		return
	}

	if len(appointments) == 0 {
		return
	}
	utils.GetLogger().Info("sending appointment reminders", zap.Int("count", len(appointments)))

	for _, appointment := range appointments {
		if err := utils.SendAppointmentReminder(appointment); err != nil {
			utils.GetLogger().Warn("failed to send reminder",
				zap.Uint("appointment_id", appointment.ID), zap.Error(err))
			continue
		}

		if err := db.DB.Model(&models.Appointment{}).
			Where("id = ?", appointment.ID).
			Update("reminder_sent", true).Error; err != nil {
			utils.GetLogger().Error("failed to mark reminder as sent",
				zap.Uint("appointment_id", appointment.ID), zap.Error(err))
			continue
		}

		utils.GetLogger().Info("reminder sent",
			zap.Uint("appointment_id", appointment.ID),
			zap.String("patient_email", appointment.Patient.Email))
	}
}
