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

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// EventImageService manages the homepage slider gallery.
type EventImageService struct {
	images repository.EventImageRepository
	dir    string
	logger *zap.Logger
}

// ImageUploadInput carries an uploaded slider image and its metadata.
type ImageUploadInput struct {
	Title       string
	Description string
	FileName    string
	Data        []byte
}

// NewEventImageService constructs the service.
func NewEventImageService(cfg config.StorageConfig, images repository.EventImageRepository, logger *zap.Logger) *EventImageService {
	return &EventImageService{
		images: images,
		dir:    cfg.EventImageDir,
		logger: logger,
	}
}

// List returns all slider images in display order.
func (s *EventImageService) List(ctx context.Context) ([]domain.EventImage, error) {
	return s.images.List(ctx)
}

// Upload stores the image bytes on disk and records the gallery entry.
// New images go to the end of the slider.
func (s *EventImageService) Upload(ctx context.Context, counselorUsername string, input ImageUploadInput) (*domain.EventImage, error) {
	if len(input.Data) == 0 {
		return nil, apperrors.NewValidationError("No file provided", nil)
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(input.FileName))] {
		return nil, apperrors.NewValidationError("Only image files are allowed", nil)
	}

	stored, err := saveUpload(s.dir, input.FileName, input.Data)
	if err != nil {
		return nil, err
	}

	position, err := s.images.Count(ctx)
	if err != nil {
		position = 0
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "Event"
	}

	image := &domain.EventImage{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		FileName:    stored,
		FilePath:    servedPath(s.dir, stored),
		UploadedBy:  counselorUsername,
		Position:    position,
	}
	if err := s.images.Create(ctx, image); err != nil {
		if rmErr := removeUpload(s.dir, stored); rmErr != nil {
			s.logger.Warn("orphaned upload left on disk", zap.String("file", stored), zap.Error(rmErr))
		}
		return nil, err
	}
	return image, nil
}

// Reorder moves an image to the given slider position.
func (s *EventImageService) Reorder(ctx context.Context, id string, position int) error {
	if position < 0 {
		return apperrors.NewValidationError("Order value must not be negative", nil)
	}
	if _, err := s.images.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Image", nil)
		}
		return err
	}
	return s.images.UpdatePosition(ctx, id, position)
}

// Delete removes an image record and its stored file.
func (s *EventImageService) Delete(ctx context.Context, id string) error {
	image, err := s.images.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Image", nil)
		}
		return err
	}

	if err := s.images.Delete(ctx, id); err != nil {
		return err
	}

	if err := removeUpload(s.dir, image.FileName); err != nil {
		s.logger.Warn("stored image not removed", zap.String("file", image.FileName), zap.Error(err))
	}
	return nil
}
