package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"timeclock-backend/internal/model"
	"timeclock-backend/internal/repository"
)

type AnnouncementHandler struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementHandler(repo repository.AnnouncementRepository) *AnnouncementHandler {
	return &AnnouncementHandler{repo: repo}
}

func (h *AnnouncementHandler) GetAll(c *fiber.Ctx) error {
	announcements, err := h.repo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load announcements"})
	}
	return c.JSON(fiber.Map{"success": true, "data": announcements})
}

func (h *AnnouncementHandler) GetPosted(c *fiber.Ctx) error {
	announcements, err := h.repo.GetPosted()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to load announcements"})
	}
	return c.JSON(fiber.Map{"success": true, "data": announcements})
}

type AnnouncementRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	announcement := model.Announcement{Content: req.Content}
	if err := h.repo.Create(&announcement); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to create announcement"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": announcement.ID})
}

func (h *AnnouncementHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid announcement ID"})
	}
	announcement, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Announcement not found"})
	}
	return c.JSON(fiber.Map{"success": true, "data": announcement})
}

// Post flips an announcement to the kiosk-visible state.
func (h *AnnouncementHandler) Post(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid announcement ID"})
	}
	announcement, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Announcement not found"})
	}
	announcement.IsPosted = true
	if err := h.repo.Update(announcement); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to post announcement"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Announcement posted"})
}

func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid announcement ID"})
	}
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to delete announcement"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Announcement deleted"})
}
