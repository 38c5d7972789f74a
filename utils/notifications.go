package utils

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ivan51987/dentista-backend/models"
)

type NotificationKind string

const (
	NotifyCreation     NotificationKind = "creation"
	NotifyUpdate       NotificationKind = "update"
	NotifyCancellation NotificationKind = "cancellation"
)

var notificationSubjects = map[NotificationKind]string{
	NotifyCreation:     "Appointment confirmation",
	NotifyUpdate:       "Your appointment has been rescheduled",
	NotifyCancellation: "Your appointment has been cancelled",
}

// SendAppointmentNotification emails the patient about an appointment event.
// Delivery is best-effort: the booking is already committed, so failures are
// logged and suppressed, never surfaced to the caller.
func SendAppointmentNotification(appointment models.Appointment, kind NotificationKind) {
	if appointment.Patient.Email == "" {
		GetLogger().Debug("patient has no email, skipping notification",
			zap.Uint("appointment_id", appointment.ID),
			zap.String("kind", string(kind)))
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s %s,</p>
		<p>%s</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Dentist:</strong> Dr. %s %s</li>
			<li><strong>Treatment:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Your dental clinic</p>
	`, appointment.Patient.FirstName, appointment.Patient.LastName,
		notificationBody(kind),
		appointment.Dentist.FirstName, appointment.Dentist.LastName,
		appointment.Treatment.Name,
		appointment.Date.Format("2006-01-02"),
		appointment.Date.Format("15:04"), appointment.End().Format("15:04"))

	if err := SendEmail(appointment.Patient.Email, notificationSubjects[kind], body); err != nil {
		GetLogger().Warn("failed to send appointment notification",
			zap.Uint("appointment_id", appointment.ID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return
	}

	GetLogger().Info("appointment notification sent",
		zap.Uint("appointment_id", appointment.ID),
		zap.String("kind", string(kind)))
}

func notificationBody(kind NotificationKind) string {
	switch kind {
	case NotifyUpdate:
		return "Your appointment has been rescheduled. The updated details are below."
	case NotifyCancellation:
		return "Your appointment has been cancelled. If this was unexpected, please contact the clinic."
	default:
		return "Your appointment has been successfully scheduled."
	}
}

// SendAppointmentReminder emails the patient ahead of an upcoming visit.
func SendAppointmentReminder(appointment models.Appointment) error {
	if appointment.Patient.Email == "" {
		return fmt.Errorf("patient %d has no email", appointment.PatientID)
	}

	body := fmt.Sprintf(`
		<p>Dear %s %s,</p>
		<p>This is a reminder of your upcoming dental appointment:</p>
		<ul>
			<li><strong>Dentist:</strong> Dr. %s %s</li>
			<li><strong>Treatment:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Your dental clinic</p>
	`, appointment.Patient.FirstName, appointment.Patient.LastName,
		appointment.Dentist.FirstName, appointment.Dentist.LastName,
		appointment.Treatment.Name,
		appointment.Date.Format("2006-01-02"),
		appointment.Date.Format("15:04"))

	return SendEmail(appointment.Patient.Email, "Appointment reminder", body)
}
