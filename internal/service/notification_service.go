package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/events"
	"github.com/spec-kit/wellbeing-service/internal/repository"
)

// NotificationService turns domain events into per-user notifications.
type NotificationService struct {
	notifications repository.NotificationRepository
	counselors    repository.CounselorRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, counselors repository.CounselorRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		counselors:    counselors,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAppointmentRequested, n.handleAppointmentRequested)
	n.dispatcher.Subscribe(events.EventAppointmentStatusChanged, n.handleAppointmentStatusChanged)
	n.dispatcher.Subscribe(events.EventCrisisDetected, n.handleCrisisDetected)
}

// ListForUser returns notifications for the given user, newest first.
func (n *NotificationService) ListForUser(ctx context.Context, username string) ([]domain.Notification, error) {
	return n.notifications.ListForUser(ctx, username)
}

// MarkRead flags a notification as read.
func (n *NotificationService) MarkRead(ctx context.Context, id string) error {
	return n.notifications.MarkRead(ctx, id)
}

func (n *NotificationService) handleAppointmentRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AppointmentRequestedPayload)
	if !ok {
		return nil
	}
	notification := &domain.Notification{
		Username: payload.CounselorUsername,
		Title:    "New appointment request",
		Message:  fmt.Sprintf("%s requested an appointment on %s at %s", event.Actor.Username, payload.Date, payload.Time),
		Type:     domain.NotificationTypeAppointment,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("failed to create notification", zap.String("event_type", string(event.Type)), zap.Error(err))
		return err
	}
	return nil
}

func (n *NotificationService) handleAppointmentStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AppointmentStatusChangedPayload)
	if !ok {
		return nil
	}
	notification := &domain.Notification{
		Username: payload.StudentUsername,
		Title:    "Appointment update",
		Message:  fmt.Sprintf("Your appointment is now %s", payload.NewStatus),
		Type:     domain.NotificationTypeAppointment,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("failed to create notification", zap.String("event_type", string(event.Type)), zap.Error(err))
		return err
	}
	return nil
}

// handleCrisisDetected fans out to every active counselor so a crisis
// message is never left waiting on a single inbox.
func (n *NotificationService) handleCrisisDetected(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CrisisDetectedPayload)
	if !ok {
		return nil
	}
	counselors, err := n.counselors.List(ctx)
	if err != nil {
		n.logger.Warn("failed to list counselors for crisis alert", zap.Error(err))
		return err
	}
	for _, counselor := range counselors {
		notification := &domain.Notification{
			Username: counselor.Username,
			Title:    "Crisis alert",
			Message:  fmt.Sprintf("A student message was flagged as crisis (ticket %s)", payload.TicketID),
			Type:     domain.NotificationTypeCrisis,
		}
		if err := n.notifications.Create(ctx, notification); err != nil {
			n.logger.Warn("failed to create crisis notification",
				zap.String("counselor", counselor.Username), zap.Error(err))
		}
	}
	return nil
}
