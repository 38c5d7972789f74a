package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/controllers"
	"github.com/ivan51987/dentista-backend/middleware"
)

// SetupRecordRoutes configures clinical record routes
func SetupRecordRoutes(app *fiber.App) {
	records := app.Group("/records", middleware.Protected())

	clinical := middleware.RequireRole("admin", "dentist")
	records.Get("/patient/:patientId", clinical, controllers.GetPatientRecords)
	records.Post("/patient/:patientId", middleware.RequireRole("dentist"), controllers.CreateDentalRecord)
	records.Get("/patient/:patientId/odontogram", clinical, controllers.GetPatientOdontogram)
	records.Get("/patient/:patientId/summary", clinical, controllers.GetPatientRecordSummary)
	records.Get("/:id", clinical, controllers.GetDentalRecord)
	records.Patch("/:id", middleware.RequireRole("dentist"), controllers.UpdateDentalRecord)
	records.Put("/:id/teeth", middleware.RequireRole("dentist"), controllers.UpsertTooth)
}
