package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/controllers"
	"github.com/ivan51987/dentista-backend/middleware"
)

// SetupPatientRoutes configures patient registry routes
func SetupPatientRoutes(app *fiber.App) {
	patients := app.Group("/patients", middleware.Protected())

	patients.Get("/", controllers.GetAllPatients)
	patients.Post("/", middleware.RequireRole("admin", "receptionist"), controllers.CreatePatient)
	patients.Get("/:id", controllers.GetPatient)
	patients.Patch("/:id", middleware.RequireRole("admin", "receptionist", "dentist"), controllers.UpdatePatient)
	patients.Delete("/:id", middleware.RequireRole("admin"), controllers.DeletePatient)

	patients.Get("/:id/appointments", controllers.GetPatientAppointments)
	patients.Get("/:id/balance", middleware.RequireRole("admin", "receptionist"), controllers.GetPatientBalance)
	patients.Get("/:id/stats", controllers.GetPatientStats)
}
