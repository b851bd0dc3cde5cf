package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wellbeing-service/internal/domain"
)

// EventImageRepository defines persistence access for slider images.
type EventImageRepository interface {
	Create(ctx context.Context, image *domain.EventImage) error
	List(ctx context.Context) ([]domain.EventImage, error)
	GetByID(ctx context.Context, id string) (*domain.EventImage, error)
	UpdatePosition(ctx context.Context, id string, position int) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type eventImageRepository struct {
	pool *pgxpool.Pool
}

// NewEventImageRepository returns a Postgres-backed implementation.
func NewEventImageRepository(pool *pgxpool.Pool) EventImageRepository {
	return &eventImageRepository{pool: pool}
}

func (r *eventImageRepository) Create(ctx context.Context, image *domain.EventImage) error {
	const query = `
        INSERT INTO event_images (title, description, file_name, file_path, uploaded_by, position)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		image.Title,
		image.Description,
		image.FileName,
		image.FilePath,
		image.UploadedBy,
		image.Position,
	).Scan(&image.ID, &image.CreatedAt)
}

func (r *eventImageRepository) List(ctx context.Context) ([]domain.EventImage, error) {
	const query = `
        SELECT id, title, description, file_name, file_path, uploaded_by, position, created_at
        FROM event_images ORDER BY position ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.EventImage
	for rows.Next() {
		var image domain.EventImage
		if err := rows.Scan(
			&image.ID,
			&image.Title,
			&image.Description,
			&image.FileName,
			&image.FilePath,
			&image.UploadedBy,
			&image.Position,
			&image.CreatedAt,
		); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *eventImageRepository) GetByID(ctx context.Context, id string) (*domain.EventImage, error) {
	const query = `
        SELECT id, title, description, file_name, file_path, uploaded_by, position, created_at
        FROM event_images WHERE id=$1`

	var image domain.EventImage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&image.ID,
		&image.Title,
		&image.Description,
		&image.FileName,
		&image.FilePath,
		&image.UploadedBy,
		&image.Position,
		&image.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *eventImageRepository) UpdatePosition(ctx context.Context, id string, position int) error {
	const query = `UPDATE event_images SET position=$2 WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id, position)
	return err
}

func (r *eventImageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM event_images WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *eventImageRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM event_images`
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
