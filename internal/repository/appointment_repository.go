package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wellbeing-service/internal/domain"
)

// AppointmentRepository defines persistence access for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListForStudent(ctx context.Context, username string) ([]domain.Appointment, error)
	ListForCounselor(ctx context.Context, username string) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository returns a Postgres-backed implementation.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

const appointmentColumns = `id, student_username, counselor_username, appointment_date, appointment_time, reason, status, created_at, updated_at`

func (r *appointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (student_username, counselor_username, appointment_date, appointment_time, reason, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		appointment.StudentUsername,
		appointment.CounselorUsername,
		appointment.Date,
		appointment.Time,
		appointment.Reason,
		appointment.Status,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE id=$1`

	var appointment domain.Appointment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&appointment.ID,
		&appointment.StudentUsername,
		&appointment.CounselorUsername,
		&appointment.Date,
		&appointment.Time,
		&appointment.Reason,
		&appointment.Status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListForStudent(ctx context.Context, username string) ([]domain.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE student_username=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, username)
}

func (r *appointmentRepository) ListForCounselor(ctx context.Context, username string) ([]domain.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE counselor_username=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, username)
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	const query = `
        UPDATE appointments SET status=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) list(ctx context.Context, query, username string) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var appointment domain.Appointment
		if err := rows.Scan(
			&appointment.ID,
			&appointment.StudentUsername,
			&appointment.CounselorUsername,
			&appointment.Date,
			&appointment.Time,
			&appointment.Reason,
			&appointment.Status,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, rows.Err()
}
