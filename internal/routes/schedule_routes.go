package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timeclock-backend/internal/handler"
	"timeclock-backend/internal/middleware"
	"timeclock-backend/internal/repository"
	"timeclock-backend/internal/service"
)

func SetupScheduleRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)

	schedule := service.NewScheduleService(scheduleRepo, log)
	hdl := handler.NewScheduleHandler(schedule, scheduleRepo, userRepo)

	api := app.Group("/api/schedule", middleware.Auth)
	api.Get("/resolve", hdl.Resolve)

	admin := api.Group("/", middleware.StaffOnly)
	admin.Get("/presets", hdl.ListPresets)
	admin.Post("/presets", hdl.CreatePreset)
	admin.Put("/presets/:id", hdl.UpdatePreset)
	admin.Delete("/presets/:id", hdl.DeletePreset)
	admin.Get("/groups", hdl.ListGroups)
	admin.Post("/groups", hdl.CreateGroup)
	admin.Put("/groups/:id", hdl.UpdateGroup)
	admin.Delete("/groups/:id", hdl.DeleteGroup)
	admin.Put("/groups/:id/overrides", hdl.SetOverride)
	admin.Delete("/groups/:id/overrides/:day", hdl.DeleteOverride)
	admin.Post("/assign", hdl.AssignGroup)
}
