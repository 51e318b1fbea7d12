package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"math-academy/internal/domain"
	"math-academy/internal/middleware"
	"math-academy/internal/service/push"
)

type PushHandler struct {
	pushService push.Service
}

func NewPushHandler(pushService push.Service) *PushHandler {
	return &PushHandler{pushService: pushService}
}

func (h *PushHandler) PublicKey(c *fiber.Ctx) error {
	key, err := h.pushService.PublicKey()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "VAPID public key not configured")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"publicKey": key})
}

func (h *PushHandler) Subscribe(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)
	if principal.IsAnonymous() {
		return middleware.Unauthorized("Unauthorized")
	}

	var input domain.SubscribeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	sub, err := h.pushService.Subscribe(c.Context(), principal, input)
	if errors.Is(err, push.ErrInvalidSubscription) {
		return middleware.BadRequest("Invalid subscription payload")
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"subscription": sub,
	})
}

func (h *PushHandler) Unsubscribe(c *fiber.Ctx) error {
	var input struct {
		Endpoint string `json:"endpoint"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Endpoint == "" {
		return middleware.BadRequest("Endpoint is required")
	}

	if err := h.pushService.Unsubscribe(c.Context(), input.Endpoint); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}
