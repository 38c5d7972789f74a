package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/controllers"
	"github.com/ivan51987/dentista-backend/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointments := app.Group("/appointments", middleware.Protected())

	appointments.Get("/", controllers.GetAllAppointments)
	appointments.Get("/availability", controllers.GetAvailability)
	appointments.Get("/:id", controllers.GetAppointment)

	booking := middleware.RequireRole("admin", "receptionist", "dentist")
	appointments.Post("/", booking, controllers.CreateAppointment)
	appointments.Patch("/:id", booking, controllers.RescheduleAppointment)
	appointments.Patch("/:id/cancel", booking, controllers.CancelAppointment)
	appointments.Patch("/:id/complete", middleware.RequireRole("dentist"), controllers.CompleteAppointment)
	appointments.Patch("/:id/no-show", booking, controllers.NoShowAppointment)
	appointments.Delete("/:id", middleware.RequireRole("admin"), controllers.DeleteAppointment)

	appointments.Get("/:id/payments", middleware.RequireRole("admin", "receptionist"), controllers.GetPayments)
	appointments.Post("/:id/payments", middleware.RequireRole("admin", "receptionist"), controllers.RecordPayment)
}
