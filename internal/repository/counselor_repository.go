package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wellbeing-service/internal/domain"
)

// CounselorRepository defines persistence access for counselors.
type CounselorRepository interface {
	Create(ctx context.Context, counselor *domain.Counselor) error
	Update(ctx context.Context, counselor *domain.Counselor) error
	Delete(ctx context.Context, username string) error
	GetByID(ctx context.Context, id string) (*domain.Counselor, error)
	GetByUsername(ctx context.Context, username string) (*domain.Counselor, error)
	List(ctx context.Context) ([]domain.Counselor, error)
	SetFeedbackGiven(ctx context.Context, username string) error
}

type counselorRepository struct {
	pool *pgxpool.Pool
}

// NewCounselorRepository returns a Postgres-backed implementation.
func NewCounselorRepository(pool *pgxpool.Pool) CounselorRepository {
	return &counselorRepository{pool: pool}
}

const counselorColumns = `id, username, email, bio, specialty, availability, password_hash, status, has_given_feedback, created_at, updated_at`

func (r *counselorRepository) Create(ctx context.Context, counselor *domain.Counselor) error {
	const query = `
        INSERT INTO counselors (username, email, bio, specialty, availability, password_hash, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		counselor.Username,
		counselor.Email,
		counselor.Bio,
		counselor.Specialty,
		counselor.Availability,
		counselor.PasswordHash,
		counselor.Status,
	).Scan(&counselor.ID, &counselor.CreatedAt, &counselor.UpdatedAt)
}

func (r *counselorRepository) Update(ctx context.Context, counselor *domain.Counselor) error {
	const query = `
        UPDATE counselors SET email=$1, bio=$2, specialty=$3, availability=$4, password_hash=$5, status=$6, updated_at=NOW()
        WHERE username=$7`

	cmd, err := r.pool.Exec(ctx, query,
		counselor.Email,
		counselor.Bio,
		counselor.Specialty,
		counselor.Availability,
		counselor.PasswordHash,
		counselor.Status,
		counselor.Username,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *counselorRepository) Delete(ctx context.Context, username string) error {
	const query = `DELETE FROM counselors WHERE username=$1`

	cmd, err := r.pool.Exec(ctx, query, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *counselorRepository) GetByID(ctx context.Context, id string) (*domain.Counselor, error) {
	const query = `SELECT ` + counselorColumns + ` FROM counselors WHERE id=$1`
	return r.scanCounselor(r.pool.QueryRow(ctx, query, id))
}

func (r *counselorRepository) GetByUsername(ctx context.Context, username string) (*domain.Counselor, error) {
	const query = `SELECT ` + counselorColumns + ` FROM counselors WHERE username=$1`
	return r.scanCounselor(r.pool.QueryRow(ctx, query, username))
}

func (r *counselorRepository) List(ctx context.Context) ([]domain.Counselor, error) {
	const query = `SELECT ` + counselorColumns + ` FROM counselors WHERE status='ACTIVE' ORDER BY username`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counselors []domain.Counselor
	for rows.Next() {
		var counselor domain.Counselor
		if err := rows.Scan(
			&counselor.ID,
			&counselor.Username,
			&counselor.Email,
			&counselor.Bio,
			&counselor.Specialty,
			&counselor.Availability,
			&counselor.PasswordHash,
			&counselor.Status,
			&counselor.HasGivenFeedback,
			&counselor.CreatedAt,
			&counselor.UpdatedAt,
		); err != nil {
			return nil, err
		}
		counselors = append(counselors, counselor)
	}
	return counselors, rows.Err()
}

func (r *counselorRepository) SetFeedbackGiven(ctx context.Context, username string) error {
	const query = `
        UPDATE counselors SET has_given_feedback=TRUE, updated_at=NOW()
        WHERE username=$1`

	cmd, err := r.pool.Exec(ctx, query, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *counselorRepository) scanCounselor(row pgx.Row) (*domain.Counselor, error) {
	var counselor domain.Counselor
	if err := row.Scan(
		&counselor.ID,
		&counselor.Username,
		&counselor.Email,
		&counselor.Bio,
		&counselor.Specialty,
		&counselor.Availability,
		&counselor.PasswordHash,
		&counselor.Status,
		&counselor.HasGivenFeedback,
		&counselor.CreatedAt,
		&counselor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &counselor, nil
}
