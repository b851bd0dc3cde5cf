package domain

import "time"

// NotificationType categorizes notifications shown to users.
type NotificationType string

const (
	NotificationTypeGeneral     NotificationType = "general"
	NotificationTypeAppointment NotificationType = "appointment"
	NotificationTypeReminder    NotificationType = "reminder"
	NotificationTypeCrisis      NotificationType = "crisis"
)

// Notification is a per-user message surfaced in the UI.
type Notification struct {
	ID        string
	Username  string
	Title     string
	Message   string
	Type      NotificationType
	Read      bool
	CreatedAt time.Time
}
