package domain

import "time"

// FeedbackEntry is a submitted rating with an optional comment.
type FeedbackEntry struct {
	ID        string
	Username  string
	Role      SubjectType
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// FeedbackStatus is the server-authoritative answer to "should the
// feedback popup be offered to this user right now".
type FeedbackStatus struct {
	HasGivenFeedback   bool `json:"has_given_feedback"`
	ActivityCount      int  `json:"activity_count"`
	ShouldShowFeedback bool `json:"should_show_feedback"`
}

// FeedbackRatingValid reports whether a rating is in the accepted 1..5 range.
func FeedbackRatingValid(rating int) bool {
	return rating >= 1 && rating <= 5
}

// MinActivityForPrompt is the number of tracked activities before the
// popup is offered.
const MinActivityForPrompt = 3

// ShouldShowFeedback computes the server-side display rule.
func ShouldShowFeedback(hasGiven bool, activityCount int, dismissed bool) bool {
	return !hasGiven && !dismissed && activityCount >= MinActivityForPrompt
}
