package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellbeing-service/internal/api/dto"
	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/service"
)

// AppointmentsHandler exposes appointment endpoints.
type AppointmentsHandler struct {
	appointments *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{appointments: appointmentService}
}

// Create handles POST /api/appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Student == nil {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	var req dto.AppointmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	appointment, err := h.appointments.Create(c.Context(), principal.Username, service.AppointmentCreateInput{
		CounselorUsername: req.Professional,
		Date:              req.Date,
		Time:              req.Time,
		Reason:            req.Reason,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":        "Appointment requested!",
		"appointment_id": appointment.ID,
	})
}

// List handles GET /api/appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Token is missing")
	}

	appointments, err := h.appointments.ListFor(c.Context(), principal.SubjectType, principal.Username)
	if err != nil {
		return err
	}

	out := make([]dto.AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		out = append(out, dto.AppointmentResponse{
			ID:                appointment.ID,
			StudentUsername:   appointment.StudentUsername,
			CounselorUsername: appointment.CounselorUsername,
			Date:              appointment.Date,
			Time:              appointment.Time,
			Reason:            appointment.Reason,
			Status:            string(appointment.Status),
			CreatedAt:         appointment.CreatedAt,
		})
	}
	return c.JSON(out)
}

// UpdateStatus handles PUT /api/appointments/:id/status.
func (h *AppointmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	var req dto.AppointmentStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	status := domain.AppointmentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	appointment, err := h.appointments.UpdateStatus(c.Context(), principal.Username, c.Params("id"), status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Appointment updated",
		"status":  string(appointment.Status),
	})
}
