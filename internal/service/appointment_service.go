package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/events"
	"github.com/spec-kit/wellbeing-service/internal/repository"
	apperrors "github.com/spec-kit/wellbeing-service/pkg/util"
)

// AppointmentService coordinates appointment booking workflows.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	counselors   repository.CounselorRepository
	dispatcher   events.Dispatcher
}

// AppointmentCreateInput describes a booking request.
type AppointmentCreateInput struct {
	CounselorUsername string
	Date              string
	Time              string
	Reason            string
}

// NewAppointmentService constructs the service.
func NewAppointmentService(appointments repository.AppointmentRepository, counselors repository.CounselorRepository, dispatcher events.Dispatcher) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		counselors:   counselors,
		dispatcher:   dispatcher,
	}
}

// Create books an appointment for a student.
func (s *AppointmentService) Create(ctx context.Context, studentUsername string, input AppointmentCreateInput) (*domain.Appointment, error) {
	counselorUsername := strings.TrimSpace(input.CounselorUsername)
	if counselorUsername == "" || input.Date == "" || input.Time == "" {
		return nil, apperrors.NewValidationError("Counselor, date and time are required", nil)
	}
	if _, err := s.counselors.GetByUsername(ctx, counselorUsername); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Counselor", nil)
		}
		return nil, err
	}

	appointment := &domain.Appointment{
		StudentUsername:   studentUsername,
		CounselorUsername: counselorUsername,
		Date:              input.Date,
		Time:              input.Time,
		Reason:            strings.TrimSpace(input.Reason),
		Status:            domain.AppointmentStatusPending,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAppointmentRequested,
			Actor:     events.Actor{Role: domain.SubjectTypeStudent, Username: studentUsername},
			Timestamp: time.Now().UTC(),
			Payload: events.AppointmentRequestedPayload{
				AppointmentID:     appointment.ID,
				CounselorUsername: appointment.CounselorUsername,
				Date:              appointment.Date,
				Time:              appointment.Time,
			},
		})
	}
	return appointment, nil
}

// ListFor returns appointments visible to the caller, filtered by role.
func (s *AppointmentService) ListFor(ctx context.Context, role domain.SubjectType, username string) ([]domain.Appointment, error) {
	switch role {
	case domain.SubjectTypeStudent:
		return s.appointments.ListForStudent(ctx, username)
	case domain.SubjectTypeCounselor:
		return s.appointments.ListForCounselor(ctx, username)
	default:
		return nil, apperrors.NewValidationError("Unknown subject", nil)
	}
}

// UpdateStatus lets the assigned counselor confirm or decline a request.
func (s *AppointmentService) UpdateStatus(ctx context.Context, counselorUsername, appointmentID string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	switch status {
	case domain.AppointmentStatusConfirmed, domain.AppointmentStatusDeclined, domain.AppointmentStatusCancelled:
	default:
		return nil, apperrors.NewValidationError("Invalid status", nil)
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Appointment", nil)
		}
		return nil, err
	}
	if appointment.CounselorUsername != counselorUsername {
		return nil, apperrors.NewForbidden("Access denied")
	}

	oldStatus := appointment.Status
	if err := s.appointments.UpdateStatus(ctx, appointmentID, status); err != nil {
		return nil, err
	}
	appointment.Status = status

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAppointmentStatusChanged,
			Actor:     events.Actor{Role: domain.SubjectTypeCounselor, Username: counselorUsername},
			Timestamp: time.Now().UTC(),
			Payload: events.AppointmentStatusChangedPayload{
				AppointmentID:   appointment.ID,
				StudentUsername: appointment.StudentUsername,
				OldStatus:       oldStatus,
				NewStatus:       status,
			},
		})
	}
	return appointment, nil
}
