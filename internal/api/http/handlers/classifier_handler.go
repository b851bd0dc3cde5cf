package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellbeing-service/internal/api/dto"
	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/service"
)

// ClassifierHandler exposes the support message classifier.
type ClassifierHandler struct {
	classifier *service.ClassifierService
}

// NewClassifierHandler constructs handler.
func NewClassifierHandler(classifierService *service.ClassifierService) *ClassifierHandler {
	return &ClassifierHandler{classifier: classifierService}
}

// Classify handles POST /api/classify. Student-only (enforced by route).
func (h *ClassifierHandler) Classify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Student == nil {
		return fiber.NewError(http.StatusForbidden, "Only students can use the classifier")
	}

	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return fiber.NewError(http.StatusBadRequest, "Missing 'message' in request body")
	}

	result, err := h.classifier.Classify(c.Context(), principal.Username, message)
	if err != nil {
		return err
	}

	return c.JSON(dto.ClassifyResponse{
		Department: string(result.Department),
		Confidence: result.Confidence,
		Reasons:    result.Reasons,
		Crisis:     result.Crisis,
	})
}
