package dto

import "time"

// FeedbackSubmitRequest payload for feedback submission.
type FeedbackSubmitRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// FeedbackStatusResponse matches the status endpoint contract.
type FeedbackStatusResponse struct {
	HasGivenFeedback   bool `json:"has_given_feedback"`
	ActivityCount      int  `json:"activity_count"`
	ShouldShowFeedback bool `json:"should_show_feedback"`
}

// FeedbackEntryResponse is a single feedback record.
type FeedbackEntryResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
