package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"timeclock-backend/config"
	"timeclock-backend/internal/model"
	"timeclock-backend/internal/repository"
	"timeclock-backend/internal/service"
)

var validate = validator.New()

type UserHandler struct {
	auth       *service.AuthService
	userRepo   repository.UserRepository
	entryRepo  repository.TimeEntryRepository
	masterRepo repository.MasterDataRepository
}

func NewUserHandler(auth *service.AuthService, userRepo repository.UserRepository, entryRepo repository.TimeEntryRepository, masterRepo repository.MasterDataRepository) *UserHandler {
	return &UserHandler{auth: auth, userRepo: userRepo, entryRepo: entryRepo, masterRepo: masterRepo}
}

type LoginRequest struct {
	EmployeeID string `json:"employee_id"`
	PIN        string `json:"pin"`
}

// Login authenticates an admin or guard terminal and issues a JWT. Regular
// employees do not log in; they only clock via the kiosk endpoints.
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	result, err := h.auth.AuthenticateByPIN(req.EmployeeID, req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Employee ID not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Authentication failed"})
	}
	if result.Status != service.Authenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Incorrect PIN"})
	}
	user := result.User
	if !user.IsStaff && !user.IsSuperuser && !user.IsGuard {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "You do not have permission to log in"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"data": fiber.Map{
			"employee_id":  user.EmployeeID,
			"name":         user.FullName(),
			"is_staff":     user.IsStaff,
			"is_superuser": user.IsSuperuser,
			"is_guard":     user.IsGuard,
		},
	})
}

// UserInfo gives the mobile app a profile plus today's clock status after a
// PIN check.
func (h *UserHandler) UserInfo(c *fiber.Ctx) error {
	employeeID := c.Params("employee_id")

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	result, err := h.auth.AuthenticateByPIN(employeeID, req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Employee ID not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Authentication failed"})
	}
	if result.Status == service.FirstLoginRequired {
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "first_login",
			"message": "First login detected. Please set a new PIN.",
		})
	}
	if result.Status != service.Authenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Incorrect PIN"})
	}
	user := result.User

	status := fiber.Map{
		"clocked_in":  false,
		"clocked_out": false,
		"time_in":     nil,
		"time_out":    nil,
	}
	start, end := service.TodayWindow(time.Now())
	if entry, err := h.entryRepo.LatestInWindow(user.ID, start, end); err == nil {
		status["clocked_in"] = true
		status["clocked_out"] = !entry.IsOpen()
		status["time_in"] = entry.TimeIn.Format("2006-01-02 15:04:05")
		if entry.TimeOut != nil {
			status["time_out"] = entry.TimeOut.Format("2006-01-02 15:04:05")
		}
	}

	companyName := ""
	if user.Company != nil {
		companyName = user.Company.Name
	}
	positionName := ""
	if user.Position != nil {
		positionName = user.Position.Name
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"employee_id":  user.EmployeeID,
		"name":         user.FullName(),
		"company":      companyName,
		"department":   positionName,
		"company_logo": companyLogo(user),
		"status":       status,
	})
}

type CreateUserRequest struct {
	EmployeeID string  `json:"employee_id" validate:"omitempty,len=6,numeric"`
	FirstName  string  `json:"first_name" validate:"required"`
	Surname    string  `json:"surname"`
	Company    string  `json:"company"`
	Position   string  `json:"position"`
	BirthDate  *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	DateHired  *string `json:"date_hired" validate:"omitempty,datetime=2006-01-02"`
	IsStaff    bool    `json:"is_staff"`
	IsGuard    bool    `json:"is_guard"`
}

// CreateUser registers an employee. Without an explicit employee_id the next
// free 6-digit ID is allocated; the account starts in first-login state.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	employeeID := req.EmployeeID
	if employeeID == "" {
		var err error
		employeeID, err = h.auth.NextEmployeeID()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
	}

	user := model.User{
		EmployeeID: employeeID,
		FirstName:  req.FirstName,
		Surname:    req.Surname,
		BirthDate:  req.BirthDate,
		DateHired:  req.DateHired,
		IsStaff:    req.IsStaff,
		IsGuard:    req.IsGuard,
		FirstLogin: true,
		IsActive:   true,
	}
	if req.Company != "" {
		company, err := h.masterRepo.FirstOrCreateCompany(req.Company)
		if err == nil {
			user.CompanyID = &company.ID
		}
	}
	if req.Position != "" {
		position, err := h.masterRepo.FirstOrCreatePosition(req.Position)
		if err == nil {
			user.PositionID = &position.ID
		}
	}

	if err := h.userRepo.Create(&user); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"employee_id": user.EmployeeID,
	})
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Company:  normalizeFilter(c.Query("company")),
		Position: normalizeFilter(c.Query("position")),
		Search:   c.Query("search"),
	}
	users, err := h.userRepo.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load users"})
	}
	return c.JSON(fiber.Map{"success": true, "data": users})
}

// Companies and Positions feed the dropdowns on the admin create-user form.
func (h *UserHandler) Companies(c *fiber.Ctx) error {
	companies, err := h.masterRepo.ListCompanies()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load companies"})
	}
	return c.JSON(fiber.Map{"success": true, "data": companies})
}

func (h *UserHandler) Positions(c *fiber.Ctx) error {
	positions, err := h.masterRepo.ListPositions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load positions"})
	}
	return c.JSON(fiber.Map{"success": true, "data": positions})
}

// localUserID reads the user_id claim the auth middleware stashed in Locals.
// Tokens signed with the shared secret but missing the claim are rejected,
// not panicked on.
func localUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, ok := localUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}
	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "User not found"})
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// SetPassword lets a superuser rotate their bcrypt password.
func (h *UserHandler) SetPassword(c *fiber.Ctx) error {
	userID, ok := localUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}
	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "User not found"})
	}
	if !user.IsSuperuser {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Only superusers use passwords"})
	}

	var req SetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to hash password"})
	}
	user.Password = string(hashed)
	if err := h.userRepo.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to update password"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      float64(user.ID),
		"employee_id":  user.EmployeeID,
		"is_staff":     user.IsStaff,
		"is_superuser": user.IsSuperuser,
		"is_guard":     user.IsGuard,
		"exp":          time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret()))
}
