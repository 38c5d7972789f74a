package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/controllers"
	"github.com/ivan51987/dentista-backend/middleware"
)

// SetupReportRoutes configures reporting and export routes
func SetupReportRoutes(app *fiber.App) {
	reports := app.Group("/reports", middleware.Protected(), middleware.RequireRole("admin"))

	reports.Get("/dashboard", controllers.GetDashboard)
	reports.Get("/revenue", controllers.GetRevenueReport)
	reports.Get("/export/pdf", controllers.ExportRevenuePDF)
	reports.Get("/export/xlsx", controllers.ExportRevenueXLSX)
	reports.Get("/dentists", controllers.GetDentistPerformance)
	reports.Get("/treatments", controllers.GetPopularTreatments)
	reports.Get("/patients/new", controllers.GetNewPatients)
}
