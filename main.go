package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ivan51987/dentista-backend/config"
	"github.com/ivan51987/dentista-backend/cron"
	"github.com/ivan51987/dentista-backend/db"
	"github.com/ivan51987/dentista-backend/redis"
	"github.com/ivan51987/dentista-backend/routes"
	"github.com/ivan51987/dentista-backend/utils"
)

func main() {
	godotenv.Load()
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupTreatmentRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupRecordRoutes(app)
	routes.SetupDocumentRoutes(app)
	routes.SetupReportRoutes(app)

	addr := ":" + config.AppConfig.AppPort
	logger.Info("server starting", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
