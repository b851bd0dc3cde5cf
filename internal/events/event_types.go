package events

import (
	"time"

	"github.com/spec-kit/wellbeing-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFeedbackSubmitted        EventType = "feedback_submitted"
	EventAppointmentRequested     EventType = "appointment_requested"
	EventAppointmentStatusChanged EventType = "appointment_status_changed"
	EventCrisisDetected           EventType = "crisis_detected"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role     domain.SubjectType `json:"role"`
	Username string             `json:"username"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// FeedbackSubmittedPayload payload.
type FeedbackSubmittedPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// AppointmentRequestedPayload payload.
type AppointmentRequestedPayload struct {
	AppointmentID     string `json:"appointment_id"`
	CounselorUsername string `json:"counselor_username"`
	Date              string `json:"date"`
	Time              string `json:"time"`
}

// AppointmentStatusChangedPayload payload.
type AppointmentStatusChangedPayload struct {
	AppointmentID   string                   `json:"appointment_id"`
	StudentUsername string                   `json:"student_username"`
	OldStatus       domain.AppointmentStatus `json:"old_status"`
	NewStatus       domain.AppointmentStatus `json:"new_status"`
}

// CrisisDetectedPayload payload.
type CrisisDetectedPayload struct {
	TicketID   string                   `json:"ticket_id"`
	Department domain.SupportDepartment `json:"department"`
	Confidence float64                  `json:"confidence"`
}
