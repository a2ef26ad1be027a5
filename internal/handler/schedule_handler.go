package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"timeclock-backend/internal/model"
	"timeclock-backend/internal/repository"
	"timeclock-backend/internal/service"
)

type ScheduleHandler struct {
	schedule *service.ScheduleService
	repo     repository.ScheduleRepository
	userRepo repository.UserRepository
}

func NewScheduleHandler(schedule *service.ScheduleService, repo repository.ScheduleRepository, userRepo repository.UserRepository) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, repo: repo, userRepo: userRepo}
}

// Resolve answers "which preset applies to this employee on this day".
// The day defaults to today's code when omitted.
func (h *ScheduleHandler) Resolve(c *fiber.Ctx) error {
	employeeID := c.Query("employee_id")
	day := c.Query("day")
	if day == "" {
		day = service.DayCode(time.Now())
	}

	user, err := h.userRepo.GetByEmployeeID(employeeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Employee ID not found"})
	}

	preset, err := h.schedule.ResolveForDay(user, day)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDayCode) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid day code"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to resolve schedule"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"day":     day,
		"preset":  service.NewTimePresetView(preset),
	})
}

type PresetRequest struct {
	Name               string `json:"name"`
	StartTime          string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime            string `json:"end_time" validate:"required,datetime=15:04"`
	GracePeriodMinutes int    `json:"grace_period_minutes" validate:"gte=0"`
}

func (h *ScheduleHandler) ListPresets(c *fiber.Ctx) error {
	presets, err := h.repo.ListPresets()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load presets"})
	}
	return c.JSON(fiber.Map{"success": true, "data": presets})
}

func (h *ScheduleHandler) CreatePreset(c *fiber.Ctx) error {
	var req PresetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	preset := model.TimePreset{
		Name:               req.Name,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		GracePeriodMinutes: req.GracePeriodMinutes,
	}
	if err := h.repo.CreatePreset(&preset); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to create preset"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": preset})
}

func (h *ScheduleHandler) UpdatePreset(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid preset ID"})
	}
	var req PresetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	preset, err := h.repo.GetPreset(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Preset not found"})
	}
	preset.Name = req.Name
	preset.StartTime = req.StartTime
	preset.EndTime = req.EndTime
	preset.GracePeriodMinutes = req.GracePeriodMinutes
	if err := h.repo.UpdatePreset(preset); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to update preset"})
	}
	return c.JSON(fiber.Map{"success": true, "data": preset})
}

// DeletePreset removes a preset; overrides that referenced it keep their row
// with a null preset, groups lose their default.
func (h *ScheduleHandler) DeletePreset(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid preset ID"})
	}
	if err := h.repo.DeletePreset(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to delete preset"})
	}
	return c.JSON(fiber.Map{"success": true})
}

type GroupRequest struct {
	Name            string `json:"name"`
	DefaultPresetID *uint  `json:"default_preset_id"`
}

func (h *ScheduleHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.repo.ListGroups()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load schedule groups"})
	}
	return c.JSON(fiber.Map{"success": true, "data": groups})
}

func (h *ScheduleHandler) CreateGroup(c *fiber.Ctx) error {
	var req GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	group := model.ScheduleGroup{Name: req.Name, DefaultPresetID: req.DefaultPresetID}
	if group.Name == "" && req.DefaultPresetID != nil {
		// Mirror the admin UI: unnamed groups display as their default hours
		if preset, err := h.repo.GetPreset(*req.DefaultPresetID); err == nil {
			group.Name = preset.StartTime + " - " + preset.EndTime
		}
	}
	if err := h.repo.CreateGroup(&group); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to create schedule group"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": group})
}

func (h *ScheduleHandler) UpdateGroup(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}
	var req GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	group, err := h.repo.GetGroup(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Schedule group not found"})
	}
	group.Name = req.Name
	group.DefaultPresetID = req.DefaultPresetID
	if err := h.repo.UpdateGroup(group); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to update schedule group"})
	}
	return c.JSON(fiber.Map{"success": true, "data": group})
}

func (h *ScheduleHandler) DeleteGroup(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}
	if err := h.repo.DeleteGroup(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to delete schedule group"})
	}
	return c.JSON(fiber.Map{"success": true})
}

type OverrideRequest struct {
	Day          string `json:"day" validate:"required,oneof=mon tue wed thu fri sat sun"`
	TimePresetID *uint  `json:"time_preset_id"`
}

// SetOverride creates or replaces the override for one weekday of a group.
func (h *ScheduleHandler) SetOverride(c *fiber.Ctx) error {
	groupID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}

	var req OverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid day code"})
	}

	override := model.DayOverride{
		ScheduleGroupID: uint(groupID),
		Day:             req.Day,
		TimePresetID:    req.TimePresetID,
	}
	if err := h.repo.UpsertOverride(&override); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to save override"})
	}
	return c.JSON(fiber.Map{"success": true, "data": override})
}

func (h *ScheduleHandler) DeleteOverride(c *fiber.Ctx) error {
	groupID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid group ID"})
	}
	day := c.Params("day")
	if !service.IsValidDayCode(day) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid day code"})
	}
	if err := h.repo.DeleteOverride(uint(groupID), day); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to delete override"})
	}
	return c.JSON(fiber.Map{"success": true})
}

type AssignGroupRequest struct {
	EmployeeID      string `json:"employee_id" validate:"required"`
	ScheduleGroupID *uint  `json:"schedule_group_id"`
}

// AssignGroup attaches (or detaches, with null) a schedule group to a user.
func (h *ScheduleHandler) AssignGroup(c *fiber.Ctx) error {
	var req AssignGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	user, err := h.userRepo.GetByEmployeeID(req.EmployeeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Employee ID not found"})
	}
	user.ScheduleGroupID = req.ScheduleGroupID
	if err := h.userRepo.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to assign schedule group"})
	}
	return c.JSON(fiber.Map{"success": true})
}
