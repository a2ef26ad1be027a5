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

func SetupUserRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewTimeEntryRepository(db)
	masterRepo := repository.NewMasterDataRepository(db)

	auth := service.NewAuthService(userRepo, log)
	hdl := handler.NewUserHandler(auth, userRepo, entryRepo, masterRepo)

	app.Post("/api/login", hdl.Login)
	app.Post("/api/users/:employee_id/info", hdl.UserInfo)

	authed := app.Group("/api/users", middleware.Auth)
	authed.Get("/", middleware.StaffOnly, hdl.ListUsers)
	authed.Post("/", middleware.StaffOnly, hdl.CreateUser)

	app.Get("/api/companies", middleware.Auth, middleware.StaffOnly, hdl.Companies)
	app.Get("/api/positions", middleware.Auth, middleware.StaffOnly, hdl.Positions)

	app.Get("/api/profile", middleware.Auth, hdl.Profile)
	app.Put("/api/password", middleware.Auth, hdl.SetPassword)
}
