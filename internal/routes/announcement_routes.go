package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timeclock-backend/internal/handler"
	"timeclock-backend/internal/middleware"
	"timeclock-backend/internal/repository"
)

func SetupAnnouncementRoutes(app *fiber.App, db *gorm.DB, _ *zap.Logger) {
	repo := repository.NewAnnouncementRepository(db)
	hdl := handler.NewAnnouncementHandler(repo)

	// Kiosks poll the posted list without a token
	app.Get("/api/announcements/posted", hdl.GetPosted)

	api := app.Group("/api/announcements", middleware.Auth, middleware.StaffOnly)
	api.Get("/", hdl.GetAll)
	api.Post("/", hdl.Create)
	api.Get("/:id", hdl.GetByID)
	api.Post("/:id/post", hdl.Post)
	api.Delete("/:id", hdl.Delete)
}
