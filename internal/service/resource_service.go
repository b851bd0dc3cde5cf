package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/wellbeing-service/internal/config"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/repository"
	apperrors "github.com/spec-kit/wellbeing-service/pkg/util"
)

// ResourceService manages the wellbeing resource library: articles,
// uploaded PDFs and linked videos.
type ResourceService struct {
	resources repository.ResourceRepository
	pdfDir    string
	logger    *zap.Logger
}

// PDFUploadInput carries an uploaded PDF and its metadata.
type PDFUploadInput struct {
	Title       string
	Description string
	Category    string
	FileName    string
	Data        []byte
}

// VideoInput carries a linked video resource.
type VideoInput struct {
	Title       string
	Description string
	VideoURL    string
}

// ResourceUpdateInput carries optional fields for a resource update.
type ResourceUpdateInput struct {
	Title       *string
	Description *string
	VideoURL    *string
}

// NewResourceService constructs the service.
func NewResourceService(cfg config.StorageConfig, resources repository.ResourceRepository, logger *zap.Logger) *ResourceService {
	return &ResourceService{
		resources: resources,
		pdfDir:    cfg.PDFDir,
		logger:    logger,
	}
}

// List returns every resource, newest first.
func (s *ResourceService) List(ctx context.Context) ([]domain.Resource, error) {
	return s.resources.List(ctx)
}

// ListByType returns resources of one kind, newest first.
func (s *ResourceService) ListByType(ctx context.Context, resourceType domain.ResourceType) ([]domain.Resource, error) {
	return s.resources.ListByType(ctx, resourceType)
}

// AddArticle stores a written resource.
func (s *ResourceService) AddArticle(ctx context.Context, counselorUsername, title, content, category string) (*domain.Resource, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationError("Title is required", nil)
	}
	if category == "" {
		category = "general"
	}

	resource := &domain.Resource{
		Title:      title,
		Content:    strings.TrimSpace(content),
		Category:   category,
		Type:       domain.ResourceTypeArticle,
		UploadedBy: counselorUsername,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// UploadPDF stores the PDF bytes on disk and records the resource.
func (s *ResourceService) UploadPDF(ctx context.Context, counselorUsername string, input PDFUploadInput) (*domain.Resource, error) {
	if len(input.Data) == 0 {
		return nil, apperrors.NewValidationError("No file provided", nil)
	}
	if !strings.EqualFold(filepath.Ext(input.FileName), ".pdf") {
		return nil, apperrors.NewValidationError("Only PDF files are allowed", nil)
	}

	stored, err := saveUpload(s.pdfDir, input.FileName, input.Data)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = strings.TrimSuffix(input.FileName, filepath.Ext(input.FileName))
	}
	category := input.Category
	if category == "" {
		category = "article"
	}

	resource := &domain.Resource{
		Title:            title,
		Description:      strings.TrimSpace(input.Description),
		Category:         category,
		Type:             domain.ResourceTypePDF,
		FileName:         stored,
		FilePath:         servedPath(s.pdfDir, stored),
		OriginalFileName: input.FileName,
		UploadedBy:       counselorUsername,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		if rmErr := removeUpload(s.pdfDir, stored); rmErr != nil {
			s.logger.Warn("orphaned upload left on disk", zap.String("file", stored), zap.Error(rmErr))
		}
		return nil, err
	}
	return resource, nil
}

// AddVideo records a video resource by URL.
func (s *ResourceService) AddVideo(ctx context.Context, counselorUsername string, input VideoInput) (*domain.Resource, error) {
	title := strings.TrimSpace(input.Title)
	url := strings.TrimSpace(input.VideoURL)
	if title == "" || url == "" {
		return nil, apperrors.NewValidationError("Title and video URL are required", nil)
	}

	resource := &domain.Resource{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Type:        domain.ResourceTypeVideo,
		VideoURL:    url,
		UploadedBy:  counselorUsername,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Update applies the provided fields to an existing resource.
func (s *ResourceService) Update(ctx context.Context, id string, input ResourceUpdateInput) (*domain.Resource, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Resource", nil)
		}
		return nil, err
	}

	changed := false
	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		resource.Title = strings.TrimSpace(*input.Title)
		changed = true
	}
	if input.Description != nil {
		resource.Description = strings.TrimSpace(*input.Description)
		changed = true
	}
	if input.VideoURL != nil && strings.TrimSpace(*input.VideoURL) != "" {
		resource.VideoURL = strings.TrimSpace(*input.VideoURL)
		changed = true
	}
	if !changed {
		return nil, apperrors.NewValidationError("No fields to update", nil)
	}

	if err := s.resources.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Delete removes a resource and, for PDFs, its stored file.
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Resource", nil)
		}
		return err
	}

	if err := s.resources.Delete(ctx, id); err != nil {
		return err
	}

	if resource.Type == domain.ResourceTypePDF {
		if err := removeUpload(s.pdfDir, resource.FileName); err != nil {
			s.logger.Warn("stored pdf not removed", zap.String("file", resource.FileName), zap.Error(err))
		}
	}
	return nil
}
