package dto

import "time"

// NotificationResponse is a single notification record.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
