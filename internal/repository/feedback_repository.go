package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wellbeing-service/internal/domain"
)

// FeedbackRepository defines persistence access for feedback entries.
type FeedbackRepository interface {
	Create(ctx context.Context, entry *domain.FeedbackEntry) error
	ListAll(ctx context.Context) ([]domain.FeedbackEntry, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository returns a Postgres-backed implementation.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, entry *domain.FeedbackEntry) error {
	const query = `
        INSERT INTO feedback_entries (username, role, rating, comment)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		entry.Username,
		entry.Role,
		entry.Rating,
		entry.Comment,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *feedbackRepository) ListAll(ctx context.Context) ([]domain.FeedbackEntry, error) {
	const query = `
        SELECT id, username, role, rating, comment, created_at
        FROM feedback_entries ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.FeedbackEntry
	for rows.Next() {
		var entry domain.FeedbackEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Username,
			&entry.Role,
			&entry.Rating,
			&entry.Comment,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
