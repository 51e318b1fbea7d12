package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"math-academy/internal/domain"
	"math-academy/internal/middleware"
	"math-academy/internal/service/notice"
	"math-academy/internal/service/storage"
)

type NoticeHandler struct {
	noticeService  notice.Service
	storageService storage.Service
}

func NewNoticeHandler(noticeService notice.Service, storageService storage.Service) *NoticeHandler {
	return &NoticeHandler{
		noticeService:  noticeService,
		storageService: storageService,
	}
}

func (h *NoticeHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateNoticeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.noticeService.Create(c.Context(), middleware.GetPrincipal(c), input)
	if err != nil {
		return mapNoticeError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"notice":  created,
	})
}

func (h *NoticeHandler) List(c *fiber.Ctx) error {
	notices, err := h.noticeService.List(c.Context(), middleware.GetPrincipal(c))
	if err != nil {
		return mapNoticeError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"notices": notices})
}

func (h *NoticeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notice ID")
	}

	found, err := h.noticeService.Get(c.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		return mapNoticeError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"notice": found})
}

func (h *NoticeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notice ID")
	}

	if err := h.noticeService.Delete(c.Context(), id); err != nil {
		return mapNoticeError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *NoticeHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notice ID")
	}

	if err := h.noticeService.MarkRead(c.Context(), middleware.GetPrincipal(c), id); err != nil {
		return mapNoticeError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *NoticeHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.noticeService.UnreadCount(c.Context(), middleware.GetPrincipal(c))
	if err != nil {
		return mapNoticeError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"unreadCount": count})
}

func (h *NoticeHandler) UploadAttachment(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("A file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read uploaded file")
	}
	defer file.Close()

	url, err := h.storageService.UploadAttachment(
		c.Context(),
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

func mapNoticeError(err error) error {
	switch {
	case errors.Is(err, notice.ErrValidation):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, notice.ErrUnauthorized):
		return middleware.Unauthorized("Unauthorized")
	case errors.Is(err, notice.ErrNoticeNotFound):
		return middleware.NotFound("Notice not found")
	case errors.Is(err, notice.ErrRecipientNotFound):
		return middleware.NotFound("Student not found")
	default:
		return err
	}
}
