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

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewTimeEntryRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	auth := service.NewAuthService(userRepo, log)
	schedule := service.NewScheduleService(scheduleRepo, log)
	attendance := service.NewAttendanceService(entryRepo, schedule, log)
	hdl := handler.NewAttendanceHandler(auth, attendance, entryRepo, userRepo)

	// Kiosk endpoints authenticate per request with employee ID + PIN
	api := app.Group("/api")
	api.Post("/clock-in", hdl.ClockIn)
	api.Post("/clock-out", hdl.ClockOut)
	api.Post("/upload-image", hdl.UploadImage)

	authed := app.Group("/api/attendance", middleware.Auth)
	authed.Get("/today", hdl.TodayEntries)
	authed.Get("/list", middleware.StaffOnly, hdl.AttendanceList)
	authed.Post("/:id/close", middleware.StaffOnly, hdl.CloseEntry)
}
