package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ivan51987/dentista-backend/controllers"
	"github.com/ivan51987/dentista-backend/middleware"
)

// SetupUserRoutes configures staff account routes
func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/users", middleware.Protected())

	users.Get("/", middleware.RequireRole("admin"), controllers.GetAllUsers)
	users.Post("/", middleware.RequireRole("admin"), controllers.CreateUser)
	users.Get("/:id", middleware.RequireSelfOrAdmin(), controllers.GetUser)
	users.Patch("/:id", middleware.RequireSelfOrAdmin(), controllers.UpdateUser)
	users.Patch("/:id/deactivate", middleware.RequireRole("admin"), controllers.DeactivateUser)
	users.Get("/:id/stats", middleware.RequireRole("admin", "dentist"), controllers.GetUserStats)

	// Working hours drive slot generation for bookings.
	users.Get("/:id/working-hours", controllers.GetWorkingHours)
	users.Put("/:id/working-hours", middleware.RequireSelfOrAdmin(), controllers.UpdateWorkingHours)
}
