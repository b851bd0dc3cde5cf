package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wellbeing-service/internal/domain"
)

// SupportTicketRepository defines persistence access for classified messages.
type SupportTicketRepository interface {
	Create(ctx context.Context, ticket *domain.SupportTicket) error
	ListForUser(ctx context.Context, username string) ([]domain.SupportTicket, error)
}

type supportTicketRepository struct {
	pool *pgxpool.Pool
}

// NewSupportTicketRepository returns a Postgres-backed implementation.
func NewSupportTicketRepository(pool *pgxpool.Pool) SupportTicketRepository {
	return &supportTicketRepository{pool: pool}
}

func (r *supportTicketRepository) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	const query = `
        INSERT INTO support_tickets (username, message, department, confidence, crisis)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		ticket.Username,
		ticket.Message,
		ticket.Department,
		ticket.Confidence,
		ticket.Crisis,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *supportTicketRepository) ListForUser(ctx context.Context, username string) ([]domain.SupportTicket, error) {
	const query = `
        SELECT id, username, message, department, confidence, crisis, created_at
        FROM support_tickets WHERE username=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.SupportTicket
	for rows.Next() {
		var ticket domain.SupportTicket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Username,
			&ticket.Message,
			&ticket.Department,
			&ticket.Confidence,
			&ticket.Crisis,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}
