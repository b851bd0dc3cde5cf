package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ActivityStore tracks per-user activity counts and dismissal cooldowns.
// Both are volatile values and live in Redis rather than Postgres.
type ActivityStore interface {
	IncrementActivity(ctx context.Context, username string) (int64, error)
	ActivityCount(ctx context.Context, username string) (int, error)
	SetDismissed(ctx context.Context, username string, cooldown time.Duration) error
	IsDismissed(ctx context.Context, username string) (bool, error)
}

type redisActivityStore struct {
	client *redis.Client
}

// NewActivityStore returns a Redis-backed implementation.
func NewActivityStore(client *redis.Client) ActivityStore {
	return &redisActivityStore{client: client}
}

func activityKey(username string) string {
	return fmt.Sprintf("feedback:activity:%s", username)
}

func dismissKey(username string) string {
	return fmt.Sprintf("feedback:dismiss:%s", username)
}

func (s *redisActivityStore) IncrementActivity(ctx context.Context, username string) (int64, error) {
	return s.client.Incr(ctx, activityKey(username)).Result()
}

func (s *redisActivityStore) ActivityCount(ctx context.Context, username string) (int, error) {
	count, err := s.client.Get(ctx, activityKey(username)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *redisActivityStore) SetDismissed(ctx context.Context, username string, cooldown time.Duration) error {
	return s.client.Set(ctx, dismissKey(username), time.Now().UTC().Format(time.RFC3339), cooldown).Err()
}

func (s *redisActivityStore) IsDismissed(ctx context.Context, username string) (bool, error) {
	_, err := s.client.Get(ctx, dismissKey(username)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
