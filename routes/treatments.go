package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/controllers"
	"github.com/ivan51987/dentista-backend/middleware"
)

// SetupTreatmentRoutes configures treatment catalog routes
func SetupTreatmentRoutes(app *fiber.App) {
	treatments := app.Group("/treatments", middleware.Protected())

	treatments.Get("/", controllers.GetAllTreatments)
	treatments.Get("/categories", controllers.GetTreatmentCategories)
	treatments.Get("/category/:category", controllers.GetTreatmentsByCategory)
	treatments.Get("/:id", controllers.GetTreatment)
	treatments.Post("/", middleware.RequireRole("admin"), controllers.CreateTreatment)
	treatments.Patch("/:id", middleware.RequireRole("admin"), controllers.UpdateTreatment)
	treatments.Patch("/:id/deactivate", middleware.RequireRole("admin"), controllers.DeactivateTreatment)
}
