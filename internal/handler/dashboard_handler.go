package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"timeclock-backend/config"
	"timeclock-backend/internal/mailer"
	"timeclock-backend/internal/service"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	mailer    *mailer.Mailer
}

func NewDashboardHandler(dashboard *service.DashboardService, mail *mailer.Mailer) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, mailer: mail}
}

// Data feeds the admin dashboard: today's board, late count and the
// late/early leaderboards.
func (h *DashboardHandler) Data(c *fiber.Ctx) error {
	data, err := h.dashboard.Today()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load dashboard data"})
	}
	return c.JSON(data)
}

func (h *DashboardHandler) SpecialDates(c *fiber.Ctx) error {
	dates, err := h.dashboard.TodaySpecialDates()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load special dates"})
	}
	return c.JSON(dates)
}

// SendLateDigest emails today's late arrivals to the configured admin
// address. No-op with an explicit error when ADMIN_EMAIL is unset.
func (h *DashboardHandler) SendLateDigest(c *fiber.Ctx) error {
	to := config.GetEnv("ADMIN_EMAIL", "")
	if to == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "ADMIN_EMAIL is not configured"})
	}

	data, err := h.dashboard.Today()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load dashboard data"})
	}

	late := make([]service.DashboardEntry, 0, len(data.TodayEntries))
	for _, entry := range data.TodayEntries {
		if entry.IsLate {
			late = append(late, entry)
		}
	}

	if err := h.mailer.SendLateDigest(to, time.Now().Format("2006-01-02"), late); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to send digest email"})
	}
	return c.JSON(fiber.Map{"success": true, "late_count": len(late)})
}
