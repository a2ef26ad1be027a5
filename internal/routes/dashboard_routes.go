package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timeclock-backend/internal/handler"
	"timeclock-backend/internal/mailer"
	"timeclock-backend/internal/middleware"
	"timeclock-backend/internal/repository"
	"timeclock-backend/internal/service"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	entryRepo := repository.NewTimeEntryRepository(db)
	userRepo := repository.NewUserRepository(db)

	dashboard := service.NewDashboardService(entryRepo, userRepo, log)
	hdl := handler.NewDashboardHandler(dashboard, mailer.NewFromEnv())

	api := app.Group("/api/dashboard", middleware.Auth, middleware.StaffOnly)
	api.Get("/data", hdl.Data)
	api.Get("/special-dates", hdl.SpecialDates)
	api.Post("/late-digest", hdl.SendLateDigest)
}
