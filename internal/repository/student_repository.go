package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wellbeing-service/internal/domain"
)

// StudentRepository defines persistence access for students.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	Update(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, username string) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	GetByUsername(ctx context.Context, username string) (*domain.Student, error)
	SetFeedbackGiven(ctx context.Context, username string) error
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

const studentColumns = `id, username, email, bio, tags, password_hash, status, has_given_feedback, created_at, updated_at`

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (username, email, bio, tags, password_hash, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		student.Username,
		student.Email,
		student.Bio,
		student.Tags,
		student.PasswordHash,
		student.Status,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	const query = `
        UPDATE students SET email=$1, bio=$2, tags=$3, password_hash=$4, status=$5, updated_at=NOW()
        WHERE username=$6`

	cmd, err := r.pool.Exec(ctx, query,
		student.Email,
		student.Bio,
		student.Tags,
		student.PasswordHash,
		student.Status,
		student.Username,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, username string) error {
	const query = `DELETE FROM students WHERE username=$1`

	cmd, err := r.pool.Exec(ctx, query, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	const query = `SELECT ` + studentColumns + ` FROM students WHERE id=$1`
	return r.scanStudent(r.pool.QueryRow(ctx, query, id))
}

func (r *studentRepository) GetByUsername(ctx context.Context, username string) (*domain.Student, error) {
	const query = `SELECT ` + studentColumns + ` FROM students WHERE username=$1`
	return r.scanStudent(r.pool.QueryRow(ctx, query, username))
}

func (r *studentRepository) SetFeedbackGiven(ctx context.Context, username string) error {
	const query = `
        UPDATE students SET has_given_feedback=TRUE, updated_at=NOW()
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

func (r *studentRepository) scanStudent(row pgx.Row) (*domain.Student, error) {
	var student domain.Student
	if err := row.Scan(
		&student.ID,
		&student.Username,
		&student.Email,
		&student.Bio,
		&student.Tags,
		&student.PasswordHash,
		&student.Status,
		&student.HasGivenFeedback,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}
