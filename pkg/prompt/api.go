package prompt

import (
	"context"

	"github.com/spec-kit/wellbeing-service/pkg/client"
)

// clientAPI adapts the service client to the engine's StatusAPI.
type clientAPI struct {
	c *client.Client
}

// NewClientAPI wraps an authenticated service client for use by the engine.
func NewClientAPI(c *client.Client) StatusAPI {
	return clientAPI{c: c}
}

func (a clientAPI) FeedbackStatus(ctx context.Context) (Status, error) {
	status, err := a.c.FeedbackStatus(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{
		HasGivenFeedback:   status.HasGivenFeedback,
		ShouldShowFeedback: status.ShouldShowFeedback,
	}, nil
}

func (a clientAPI) SubmitFeedback(ctx context.Context, rating int, comment string) error {
	return a.c.SubmitFeedback(ctx, client.FeedbackSubmission{Rating: rating, Comment: comment})
}

func (a clientAPI) DismissFeedback(ctx context.Context) error {
	return a.c.DismissFeedback(ctx)
}

func (a clientAPI) TrackActivity(ctx context.Context) error {
	return a.c.TrackActivity(ctx)
}
