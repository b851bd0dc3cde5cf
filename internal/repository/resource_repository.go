package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wellbeing-service/internal/domain"
)

// ResourceRepository defines persistence access for wellbeing resources.
type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) error
	List(ctx context.Context) ([]domain.Resource, error)
	ListByType(ctx context.Context, resourceType domain.ResourceType) ([]domain.Resource, error)
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	Update(ctx context.Context, resource *domain.Resource) error
	Delete(ctx context.Context, id string) error
}

type resourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository returns a Postgres-backed implementation.
func NewResourceRepository(pool *pgxpool.Pool) ResourceRepository {
	return &resourceRepository{pool: pool}
}

const resourceColumns = `
        id, title, description, content, category, resource_type,
        video_url, file_name, file_path, original_file_name, uploaded_by, created_at`

func (r *resourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	const query = `
        INSERT INTO resources (title, description, content, category, resource_type,
            video_url, file_name, file_path, original_file_name, uploaded_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		resource.Title,
		resource.Description,
		resource.Content,
		resource.Category,
		resource.Type,
		resource.VideoURL,
		resource.FileName,
		resource.FilePath,
		resource.OriginalFileName,
		resource.UploadedBy,
	).Scan(&resource.ID, &resource.CreatedAt)
}

func (r *resourceRepository) List(ctx context.Context) ([]domain.Resource, error) {
	const query = `SELECT` + resourceColumns + `
        FROM resources ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResources(rows)
}

func (r *resourceRepository) ListByType(ctx context.Context, resourceType domain.ResourceType) ([]domain.Resource, error) {
	const query = `SELECT` + resourceColumns + `
        FROM resources WHERE resource_type=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, resourceType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResources(rows)
}

func (r *resourceRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	const query = `SELECT` + resourceColumns + `
        FROM resources WHERE id=$1`

	var resource domain.Resource
	if err := scanResource(r.pool.QueryRow(ctx, query, id), &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	const query = `
        UPDATE resources
        SET title=$2, description=$3, video_url=$4
        WHERE id=$1`
	_, err := r.pool.Exec(ctx, query,
		resource.ID,
		resource.Title,
		resource.Description,
		resource.VideoURL,
	)
	return err
}

func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM resources WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func scanResource(row pgx.Row, resource *domain.Resource) error {
	return row.Scan(
		&resource.ID,
		&resource.Title,
		&resource.Description,
		&resource.Content,
		&resource.Category,
		&resource.Type,
		&resource.VideoURL,
		&resource.FileName,
		&resource.FilePath,
		&resource.OriginalFileName,
		&resource.UploadedBy,
		&resource.CreatedAt,
	)
}

func collectResources(rows pgx.Rows) ([]domain.Resource, error) {
	var resources []domain.Resource
	for rows.Next() {
		var resource domain.Resource
		if err := scanResource(rows, &resource); err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}
	return resources, rows.Err()
}
