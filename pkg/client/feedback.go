package client

import (
	"context"
	"net/http"
)

// FeedbackStatus fetches the server-side prompt decision for the
// authenticated user.
func (c *Client) FeedbackStatus(ctx context.Context) (*FeedbackStatus, error) {
	var status FeedbackStatus
	if err := c.do(ctx, http.MethodGet, "/api/feedback/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// TrackActivity increments the authenticated user's activity counter.
func (c *Client) TrackActivity(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/feedback/track-activity", nil, nil)
}

// SubmitFeedback stores a feedback entry for the authenticated user.
func (c *Client) SubmitFeedback(ctx context.Context, submission FeedbackSubmission) error {
	return c.do(ctx, http.MethodPost, "/api/feedback/submit", submission, nil)
}

// DismissFeedback records a temporary dismissal of the feedback prompt.
func (c *Client) DismissFeedback(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/feedback/dismiss", nil, nil)
}

// ListFeedback returns all feedback entries, newest first. Counselor only.
func (c *Client) ListFeedback(ctx context.Context) ([]FeedbackEntry, error) {
	var entries []FeedbackEntry
	if err := c.do(ctx, http.MethodGet, "/api/feedback/all", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Classify routes a support message to a department. Student only.
func (c *Client) Classify(ctx context.Context, message string) (*Classification, error) {
	req := struct {
		Message string `json:"message"`
	}{Message: message}
	var result Classification
	if err := c.do(ctx, http.MethodPost, "/api/classify", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
