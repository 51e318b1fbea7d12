package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"math-academy/internal/config"
	"math-academy/internal/domain"
	"math-academy/internal/middleware"
	"math-academy/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
	cfg         *config.Config
}

func NewAuthHandler(authService auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var input domain.AdminLoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Phone == "" || input.PIN == "" {
		return middleware.BadRequest("Phone and PIN are required")
	}

	_, err := h.authService.AdminLogin(c.Context(), input)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return middleware.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return err
	}

	h.setCookie(c, middleware.AdminSessionCookie, "1", h.cfg.AdminSessionMaxAge)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) StudentLogin(c *fiber.Ctx) error {
	var input domain.StudentLoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.RegistrationNo == "" {
		return middleware.BadRequest("Registration number is required")
	}
	if input.Phone == "" {
		return middleware.BadRequest("Phone number is required")
	}

	student, token, err := h.authService.StudentLogin(c.Context(), input)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return middleware.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return err
	}

	h.setCookie(c, middleware.StudentSessionCookie, token, h.cfg.StudentSessionMaxAge)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"student": fiber.Map{
			"id":        student.ID,
			"full_name": student.FullName,
		},
	})
}

func (h *AuthHandler) StudentLogout(c *fiber.Ctx) error {
	h.setCookie(c, middleware.StudentSessionCookie, "", -time.Second)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, name, value string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   h.cfg.Environment == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(maxAge.Seconds()),
		Path:     "/",
	})
}
