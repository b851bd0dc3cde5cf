// Package prompt decides whether and when to surface the feedback prompt
// for a signed-in user. It reconciles locally persisted state (login time,
// dismiss time, feedback-given flag) against the server's authoritative
// record, and drives a Presenter through show/hide transitions.
package prompt

import (
	"context"
	"time"
)

const (
	// DismissCooldown suppresses the prompt after a dismissal.
	DismissCooldown = 60 * time.Second
	// ShowDelay is the UX pause between a positive remote decision and
	// actually presenting the prompt.
	ShowDelay = 1500 * time.Millisecond
	// CheckInterval is the cadence of the periodic local threshold check.
	CheckInterval = 30 * time.Second
	// LoginThreshold is the minimum session age before the local timer
	// path may present the prompt.
	LoginThreshold = 5 * time.Minute
	// SuccessHideDelay keeps the success affordance visible after a
	// submission before hiding the prompt.
	SuccessHideDelay = 2 * time.Second
)

// Status is the server's view of a user's feedback standing.
type Status struct {
	HasGivenFeedback   bool
	ShouldShowFeedback bool
}

// StatusAPI is the remote endpoint surface the engine talks to. All calls
// are best-effort from the engine's point of view; errors degrade to
// "do not show this cycle".
type StatusAPI interface {
	FeedbackStatus(ctx context.Context) (Status, error)
	SubmitFeedback(ctx context.Context, rating int, comment string) error
	DismissFeedback(ctx context.Context) error
	TrackActivity(ctx context.Context) error
}

// Presenter receives the engine's UI transitions. Implementations must not
// call back into the engine from these methods.
type Presenter interface {
	ShowPrompt()
	HidePrompt()
	ShowSuccess()
	SubmitFailed(message string)
}

type nopPresenter struct{}

func (nopPresenter) ShowPrompt()         {}
func (nopPresenter) HidePrompt()         {}
func (nopPresenter) ShowSuccess()        {}
func (nopPresenter) SubmitFailed(string) {}
