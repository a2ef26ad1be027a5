package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"timeclock-backend/internal/model"
	"timeclock-backend/internal/repository"
	"timeclock-backend/internal/service"
)

type AttendanceHandler struct {
	auth       *service.AuthService
	attendance *service.AttendanceService
	entryRepo  repository.TimeEntryRepository
	userRepo   repository.UserRepository
}

func NewAttendanceHandler(auth *service.AuthService, attendance *service.AttendanceService, entryRepo repository.TimeEntryRepository, userRepo repository.UserRepository) *AttendanceHandler {
	return &AttendanceHandler{auth: auth, attendance: attendance, entryRepo: entryRepo, userRepo: userRepo}
}

type LocationPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
	Address   string   `json:"address"`
}

type ClockRequest struct {
	EmployeeID      string          `json:"employee_id"`
	PIN             string          `json:"pin"`
	NewPIN          string          `json:"new_pin"`
	FirstLoginCheck bool            `json:"first_login_check"`
	ImageData       string          `json:"image_data"` // base64 clock photo
	Location        LocationPayload `json:"location"`
}

func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	var req ClockRequest
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

	if result.Status == service.FirstLoginRequired {
		if req.NewPIN != "" {
			if err := h.auth.SetPIN(result.User, req.NewPIN); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
			}
			return c.JSON(fiber.Map{"success": true, "message": "PIN updated successfully"})
		}
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "first_login",
			"message": "First login detected. Please set a new PIN.",
		})
	}

	// Probe used by the kiosk before showing the PIN-change dialog
	if req.FirstLoginCheck {
		return c.JSON(fiber.Map{"success": true})
	}

	if result.Status != service.Authenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Incorrect PIN"})
	}
	user := result.User

	entry, err := h.attendance.ClockIn(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to record clock-in"})
	}

	// Photo and location are attached here, not inside the recorder
	changed := false
	if req.ImageData != "" {
		if path, err := saveImageFromBase64(req.ImageData, user); err == nil {
			entry.ImagePath = path
			changed = true
		}
	}
	if req.Location.Latitude != nil || req.Location.Address != "" {
		entry.Latitude = req.Location.Latitude
		entry.Longitude = req.Location.Longitude
		entry.LocationAccuracy = req.Location.Accuracy
		entry.LocationAddress = req.Location.Address
		changed = true
	}
	if changed {
		if err := h.entryRepo.Update(entry); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to save attachment"})
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"employee_id":  user.EmployeeID,
		"name":         user.FullName(),
		"time":         entry.TimeIn.Format("2006-01-02 15:04:05"),
		"is_late":      entry.IsLate,
		"minutes_late": entry.MinutesLate,
		"company_logo": companyLogo(user),
		"entry":        service.NewTimeEntryView(entry, user),
	})
}

func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	var req ClockRequest
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
	if result.Status == service.FirstLoginRequired {
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "first_login",
			"message": "First login detected. Please set a new PIN and clock in first.",
		})
	}
	if result.Status != service.Authenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Incorrect PIN"})
	}
	user := result.User

	entry, err := h.attendance.ClockOutToday(user)
	if err != nil {
		if errors.Is(err, service.ErrNoOpenEntry) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "No active clock in found for today."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to record clock-out"})
	}

	if req.Location.Latitude != nil || req.Location.Address != "" {
		entry.CheckoutLatitude = req.Location.Latitude
		entry.CheckoutLongitude = req.Location.Longitude
		entry.CheckoutLocationAccuracy = req.Location.Accuracy
		entry.CheckoutLocationAddress = req.Location.Address
		if err := h.entryRepo.Update(entry); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to save attachment"})
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"employee_id":  user.EmployeeID,
		"name":         user.FullName(),
		"time_in":      entry.TimeIn.Format("2006-01-02 15:04:05"),
		"time_out":     entry.TimeOut.Format("2006-01-02 15:04:05"),
		"duration":     formatDuration(entry.TimeIn, *entry.TimeOut),
		"company_logo": companyLogo(user),
		"entry":        service.NewTimeEntryView(entry, user),
	})
}

// CloseEntry lets an admin force-close a specific entry, for fixing up
// records the kiosk flow cannot reach.
func (h *AttendanceHandler) CloseEntry(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid entry ID"})
	}

	entry, err := h.attendance.ClockOut(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Time entry not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to close entry"})
	}
	return c.JSON(fiber.Map{"success": true, "entry": service.NewTimeEntryView(entry, nil)})
}

// TodayEntries lists every entry opened today, newest change first.
func (h *AttendanceHandler) TodayEntries(c *fiber.Ctx) error {
	start, end := service.TodayWindow(time.Now())
	entries, err := h.entryRepo.ByWindow(start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load entries"})
	}

	views := make([]service.TimeEntryView, 0, len(entries))
	for i := range entries {
		views = append(views, service.NewTimeEntryView(&entries[i], nil))
	}
	return c.JSON(fiber.Map{"entries": views})
}

// AttendanceList backs the admin report screen: a full time log or an
// active/inactive user roster, filterable by company, position and name.
func (h *AttendanceHandler) AttendanceList(c *fiber.Ctx) error {
	listType := c.Query("attendance_type", "time-log")
	filter := repository.UserFilter{
		Company:  normalizeFilter(c.Query("attendance_company")),
		Position: normalizeFilter(c.Query("attendance_department")),
		Search:   strings.TrimSpace(c.Query("search")),
	}

	switch listType {
	case "time-log":
		entries, err := h.entryRepo.All()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load entries"})
		}
		rows := make([]fiber.Map, 0, len(entries))
		for i := range entries {
			entry := &entries[i]
			if !matchesFilter(&entry.User, filter) {
				continue
			}
			timeOut := ""
			if entry.TimeOut != nil {
				timeOut = entry.TimeOut.Format("2006-01-02 15:04:05")
			}
			rows = append(rows, fiber.Map{
				"employee_id":  entry.User.EmployeeID,
				"name":         entry.User.FullName(),
				"time_in":      entry.TimeIn.Format("2006-01-02 15:04:05"),
				"time_out":     timeOut,
				"hours_worked": entry.HoursWorked,
			})
		}
		return c.JSON(fiber.Map{"attendance_list": rows, "attendance_type": listType})

	case "users-active", "users-inactive":
		users, err := h.userRepo.List(filter)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load users"})
		}
		rows := make([]fiber.Map, 0, len(users))
		for i := range users {
			user := &users[i]
			open, err := h.entryRepo.OpenByUser(user.ID)
			if err != nil {
				continue
			}
			onClock := len(open) > 0
			if (listType == "users-active") != onClock {
				continue
			}
			rows = append(rows, fiber.Map{
				"employee_id": user.EmployeeID,
				"name":        user.FullName(),
			})
		}
		return c.JSON(fiber.Map{"attendance_list": rows, "attendance_type": listType})
	}

	return c.JSON(fiber.Map{"attendance_list": []fiber.Map{}, "attendance_type": listType})
}

// UploadImage stores a clock photo on its own, for kiosks that upload before
// the clock action completes.
func (h *AttendanceHandler) UploadImage(c *fiber.Ctx) error {
	employeeID := c.FormValue("employee_id")
	user, err := h.userRepo.GetByEmployeeID(employeeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "No image uploaded"})
	}

	dir := imageDir(time.Now())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to prepare storage"})
	}
	path := filepath.Join(dir, imageFileName(user))
	if err := c.SaveFile(file, path); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to save image"})
	}

	return c.JSON(fiber.Map{"success": true, "file_path": path})
}

func saveImageFromBase64(data string, user *model.User) (string, error) {
	if idx := strings.Index(data, ";base64,"); idx >= 0 {
		data = data[idx+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	dir := imageDir(time.Now())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, imageFileName(user))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func imageDir(now time.Time) string {
	return filepath.Join("uploads", "attendance", now.Format("2006"), now.Format("01"), now.Format("02"))
}

func imageFileName(user *model.User) string {
	return fmt.Sprintf("%s_%s_%s.jpg",
		time.Now().Format("150405"), user.EmployeeID, uuid.NewString()[:8])
}

func companyLogo(user *model.User) string {
	if user.Company != nil && user.Company.Logo != "" {
		return user.Company.Logo
	}
	return "default_logo.png"
}

func formatDuration(in, out time.Time) string {
	d := out.Sub(in)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func normalizeFilter(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return ""
	}
	return value
}

func matchesFilter(user *model.User, filter repository.UserFilter) bool {
	if filter.Company != "" {
		if user.Company == nil || !strings.EqualFold(user.Company.Name, filter.Company) {
			return false
		}
	}
	if filter.Position != "" {
		if user.Position == nil || user.Position.Name != filter.Position {
			return false
		}
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(user.FirstName), needle) &&
			!strings.Contains(strings.ToLower(user.Surname), needle) {
			return false
		}
	}
	return true
}
