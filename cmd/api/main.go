package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"timeclock-backend/config"
	"timeclock-backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables.")
	}

	var log *zap.Logger
	var err error
	if config.GetEnv("APP_ENV", "development") == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	config.ConnectDB()
	log.Info("database connected")

	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New())

	// Clock photos are served straight from disk
	app.Static("/uploads", "./uploads")

	routes.SetupUserRoutes(app, config.DB, log)
	routes.SetupAttendanceRoutes(app, config.DB, log)
	routes.SetupScheduleRoutes(app, config.DB, log)
	routes.SetupAnnouncementRoutes(app, config.DB, log)
	routes.SetupDashboardRoutes(app, config.DB, log)

	addr := ":" + config.GetEnv("PORT", "3000")
	log.Info("server listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
