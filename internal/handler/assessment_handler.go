package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"math-academy/internal/domain"
	"math-academy/internal/middleware"
	"math-academy/internal/service/assessment"
)

type AssessmentHandler struct {
	assessmentService assessment.Service
}

func NewAssessmentHandler(assessmentService assessment.Service) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

func (h *AssessmentHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAssessmentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid JSON in request body")
	}

	created, err := h.assessmentService.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, assessment.ErrValidation):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, assessment.ErrBatchNotFound):
			return middleware.NotFound("Batch not found")
		default:
			return err
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"assessment": created,
	})
}
