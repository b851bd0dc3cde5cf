package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/wellbeing-service/internal/config"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/events"
	"github.com/spec-kit/wellbeing-service/internal/repository"
	apperrors "github.com/spec-kit/wellbeing-service/pkg/util"
)

// FeedbackService owns the server side of the feedback prompt: status
// checks, activity tracking, submission and dismissal cooldowns.
type FeedbackService struct {
	students   repository.StudentRepository
	counselors repository.CounselorRepository
	entries    repository.FeedbackRepository
	activity   repository.ActivityStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	threshold  int
	cooldown   time.Duration
}

// FeedbackDependencies bundles repositories for the feedback service.
type FeedbackDependencies struct {
	StudentRepo   repository.StudentRepository
	CounselorRepo repository.CounselorRepository
	FeedbackRepo  repository.FeedbackRepository
	ActivityStore repository.ActivityStore
	Dispatcher    events.Dispatcher
}

// NewFeedbackService constructs the service.
func NewFeedbackService(cfg config.FeedbackConfig, deps FeedbackDependencies, logger *zap.Logger) *FeedbackService {
	threshold := cfg.ActivityThreshold
	if threshold <= 0 {
		threshold = domain.MinActivityForPrompt
	}
	return &FeedbackService{
		students:   deps.StudentRepo,
		counselors: deps.CounselorRepo,
		entries:    deps.FeedbackRepo,
		activity:   deps.ActivityStore,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		threshold:  threshold,
		cooldown:   cfg.DismissCooldown(),
	}
}

// Status reports whether the caller should be offered the feedback popup.
func (s *FeedbackService) Status(ctx context.Context, role domain.SubjectType, username string) (*domain.FeedbackStatus, error) {
	hasGiven, err := s.hasGivenFeedback(ctx, role, username)
	if err != nil {
		return nil, err
	}

	count, err := s.activity.ActivityCount(ctx, username)
	if err != nil {
		// activity counter is advisory; a Redis outage must not break status
		s.logger.Warn("activity count unavailable", zap.String("username", username), zap.Error(err))
		count = 0
	}

	dismissed, err := s.activity.IsDismissed(ctx, username)
	if err != nil {
		s.logger.Warn("dismiss marker unavailable", zap.String("username", username), zap.Error(err))
		dismissed = false
	}

	return &domain.FeedbackStatus{
		HasGivenFeedback:   hasGiven,
		ActivityCount:      count,
		ShouldShowFeedback: !hasGiven && !dismissed && count >= s.threshold,
	}, nil
}

// TrackActivity increments the caller's activity counter.
func (s *FeedbackService) TrackActivity(ctx context.Context, username string) (int64, error) {
	return s.activity.IncrementActivity(ctx, username)
}

// Submit validates and stores a feedback entry, then marks the account
// as having given feedback.
func (s *FeedbackService) Submit(ctx context.Context, role domain.SubjectType, username string, rating int, comment string) (*domain.FeedbackEntry, error) {
	if !domain.FeedbackRatingValid(rating) {
		return nil, apperrors.NewValidationError("Rating must be between 1 and 5", nil)
	}

	entry := &domain.FeedbackEntry{
		Username: username,
		Role:     role,
		Rating:   rating,
		Comment:  strings.TrimSpace(comment),
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.markFeedbackGiven(ctx, role, username); err != nil {
		// the entry is stored; a failed flag update means the user may be
		// prompted again, which beats losing the feedback itself
		s.logger.Warn("failed to mark feedback given", zap.String("username", username), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventFeedbackSubmitted,
		Actor:     events.Actor{Role: role, Username: username},
		Timestamp: time.Now().UTC(),
		Payload: events.FeedbackSubmittedPayload{
			Rating:  entry.Rating,
			Comment: entry.Comment,
		},
	})
	return entry, nil
}

// Dismiss records a dismissal cooldown for the caller.
func (s *FeedbackService) Dismiss(ctx context.Context, username string) error {
	if err := s.activity.SetDismissed(ctx, username, s.cooldown); err != nil {
		s.logger.Warn("failed to record dismissal", zap.String("username", username), zap.Error(err))
		return err
	}
	return nil
}

// ListAll returns every feedback entry, newest first. Counselor-only.
func (s *FeedbackService) ListAll(ctx context.Context) ([]domain.FeedbackEntry, error) {
	return s.entries.ListAll(ctx)
}

func (s *FeedbackService) hasGivenFeedback(ctx context.Context, role domain.SubjectType, username string) (bool, error) {
	switch role {
	case domain.SubjectTypeStudent:
		student, err := s.students.GetByUsername(ctx, username)
		if err != nil {
			return false, err
		}
		return student.HasGivenFeedback, nil
	case domain.SubjectTypeCounselor:
		counselor, err := s.counselors.GetByUsername(ctx, username)
		if err != nil {
			return false, err
		}
		return counselor.HasGivenFeedback, nil
	default:
		return false, apperrors.NewUnauthorized("unknown subject")
	}
}

func (s *FeedbackService) markFeedbackGiven(ctx context.Context, role domain.SubjectType, username string) error {
	switch role {
	case domain.SubjectTypeStudent:
		return s.students.SetFeedbackGiven(ctx, username)
	case domain.SubjectTypeCounselor:
		return s.counselors.SetFeedbackGiven(ctx, username)
	default:
		return apperrors.NewUnauthorized("unknown subject")
	}
}

func (s *FeedbackService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
