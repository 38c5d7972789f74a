package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/controllers"
	"github.com/ivan51987/dentista-backend/middleware"
)

// SetupDocumentRoutes configures file attachment routes
func SetupDocumentRoutes(app *fiber.App) {
	documents := app.Group("/documents", middleware.Protected())

	documents.Get("/patient/:patientId", controllers.GetPatientDocuments)
	documents.Post("/patient/:patientId", middleware.RequireRole("admin", "dentist", "assistant"), controllers.UploadDocument)
	documents.Get("/:id", controllers.GetDocument)
	documents.Put("/:id", middleware.RequireRole("admin", "dentist", "assistant"), controllers.UpdateDocument)
	documents.Delete("/:id", middleware.RequireRole("admin"), controllers.DeleteDocument)
}
