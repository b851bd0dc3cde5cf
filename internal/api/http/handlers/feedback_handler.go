package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellbeing-service/internal/api/dto"
	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/service"
)

// FeedbackHandler exposes the feedback prompt endpoints.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedbackService}
}

// Status handles GET /api/feedback/status.
func (h *FeedbackHandler) Status(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Token is missing")
	}

	status, err := h.feedback.Status(c.Context(), principal.SubjectType, principal.Username)
	if err != nil {
		return err
	}

	return c.JSON(dto.FeedbackStatusResponse{
		HasGivenFeedback:   status.HasGivenFeedback,
		ActivityCount:      status.ActivityCount,
		ShouldShowFeedback: status.ShouldShowFeedback,
	})
}

// TrackActivity handles POST /api/feedback/track-activity.
func (h *FeedbackHandler) TrackActivity(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Token is missing")
	}

	if _, err := h.feedback.TrackActivity(c.Context(), principal.Username); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Activity tracked"})
}

// Submit handles POST /api/feedback/submit.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Token is missing")
	}

	var req dto.FeedbackSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	entry, err := h.feedback.Submit(c.Context(), principal.SubjectType, principal.Username, req.Rating, req.Comment)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Thank you for your feedback!",
		"rating":  entry.Rating,
	})
}

// Dismiss handles POST /api/feedback/dismiss.
func (h *FeedbackHandler) Dismiss(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Token is missing")
	}

	if err := h.feedback.Dismiss(c.Context(), principal.Username); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Feedback dismissed temporarily"})
}

// ListAll handles GET /api/feedback/all. Counselor-only (enforced by route).
func (h *FeedbackHandler) ListAll(c *fiber.Ctx) error {
	entries, err := h.feedback.ListAll(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.FeedbackEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.FeedbackEntryResponse{
			ID:        entry.ID,
			Username:  entry.Username,
			Role:      string(entry.Role),
			Rating:    entry.Rating,
			Comment:   entry.Comment,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(out)
}
