package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/wellbeing-service/internal/api/dto"
	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/service"
)

// NotificationsHandler exposes notification endpoints.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notificationService}
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Token is missing")
	}

	notifications, err := h.notifications.ListForUser(c.Context(), principal.Username)
	if err != nil {
		return err
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, dto.NotificationResponse{
			ID:        notification.ID,
			Username:  notification.Username,
			Title:     notification.Title,
			Message:   notification.Message,
			Type:      string(notification.Type),
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		})
	}
	return c.JSON(out)
}

// MarkRead handles PUT /api/notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return fiber.NewError(http.StatusUnauthorized, "Token is missing")
	}

	if err := h.notifications.MarkRead(c.Context(), c.Params("id")); err != nil {
		if err == pgx.ErrNoRows {
			return fiber.NewError(http.StatusNotFound, "Notification not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
