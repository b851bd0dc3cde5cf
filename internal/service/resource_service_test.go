package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/wellbeing-service/internal/config"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	apperrors "github.com/spec-kit/wellbeing-service/pkg/util"
)

type stubResourceRepo struct {
	resources map[string]*domain.Resource
	nextID    int
	createErr error
}

func newStubResourceRepo() *stubResourceRepo {
	return &stubResourceRepo{resources: make(map[string]*domain.Resource)}
}

func (r *stubResourceRepo) Create(_ context.Context, resource *domain.Resource) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	resource.ID = fmt.Sprintf("res-%d", r.nextID)
	stored := *resource
	r.resources[resource.ID] = &stored
	return nil
}

func (r *stubResourceRepo) List(context.Context) ([]domain.Resource, error) {
	var out []domain.Resource
	for _, resource := range r.resources {
		out = append(out, *resource)
	}
	return out, nil
}

func (r *stubResourceRepo) ListByType(_ context.Context, resourceType domain.ResourceType) ([]domain.Resource, error) {
	var out []domain.Resource
	for _, resource := range r.resources {
		if resource.Type == resourceType {
			out = append(out, *resource)
		}
	}
	return out, nil
}

func (r *stubResourceRepo) GetByID(_ context.Context, id string) (*domain.Resource, error) {
	resource, ok := r.resources[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *resource
	return &copied, nil
}

func (r *stubResourceRepo) Update(_ context.Context, resource *domain.Resource) error {
	if _, ok := r.resources[resource.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *resource
	r.resources[resource.ID] = &stored
	return nil
}

func (r *stubResourceRepo) Delete(_ context.Context, id string) error {
	delete(r.resources, id)
	return nil
}

func newResourceService(t *testing.T) (*ResourceService, *stubResourceRepo, string) {
	t.Helper()
	repo := newStubResourceRepo()
	dir := t.TempDir()
	svc := NewResourceService(config.StorageConfig{PDFDir: dir}, repo, zap.NewNop())
	return svc, repo, dir
}

func TestUploadPDFStoresFileAndRecord(t *testing.T) {
	svc, repo, dir := newResourceService(t)

	resource, err := svc.UploadPDF(context.Background(), "drsmith", PDFUploadInput{
		Title:       "Sleep hygiene",
		Description: "A short guide",
		FileName:    "sleep guide.pdf",
		Data:        []byte("%PDF-1.4 fake"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ResourceTypePDF, resource.Type)
	assert.Equal(t, "drsmith", resource.UploadedBy)
	assert.Equal(t, "sleep guide.pdf", resource.OriginalFileName)
	assert.NotContains(t, resource.FileName, " ")
	assert.Len(t, repo.resources, 1)

	data, err := os.ReadFile(filepath.Join(dir, resource.FileName))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
}

func TestUploadPDFRejectsNonPDF(t *testing.T) {
	svc, repo, _ := newResourceService(t)

	_, err := svc.UploadPDF(context.Background(), "drsmith", PDFUploadInput{
		FileName: "notes.txt",
		Data:     []byte("hello"),
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "Only PDF files are allowed", domainErr.Message)
	assert.Empty(t, repo.resources)
}

func TestUploadPDFRejectsEmptyPayload(t *testing.T) {
	svc, _, _ := newResourceService(t)

	_, err := svc.UploadPDF(context.Background(), "drsmith", PDFUploadInput{FileName: "a.pdf"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "No file provided", domainErr.Message)
}

func TestUploadPDFRemovesFileWhenInsertFails(t *testing.T) {
	svc, repo, dir := newResourceService(t)
	repo.createErr = errors.New("connection reset")

	_, err := svc.UploadPDF(context.Background(), "drsmith", PDFUploadInput{
		FileName: "guide.pdf",
		Data:     []byte("%PDF"),
	})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddVideoRequiresTitleAndURL(t *testing.T) {
	svc, _, _ := newResourceService(t)

	_, err := svc.AddVideo(context.Background(), "drsmith", VideoInput{Title: "Breathing"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Title and video URL are required", domainErr.Message)
}

func TestAddVideoStoresRecord(t *testing.T) {
	svc, repo, _ := newResourceService(t)

	resource, err := svc.AddVideo(context.Background(), "drsmith", VideoInput{
		Title:    "  Breathing exercises  ",
		VideoURL: " https://example.com/v/1 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Breathing exercises", resource.Title)
	assert.Equal(t, "https://example.com/v/1", resource.VideoURL)
	assert.Equal(t, domain.ResourceTypeVideo, resource.Type)
	assert.Len(t, repo.resources, 1)
}

func TestUpdateUnknownResourceIsNotFound(t *testing.T) {
	svc, _, _ := newResourceService(t)

	title := "New title"
	_, err := svc.Update(context.Background(), "missing", ResourceUpdateInput{Title: &title})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestUpdateAppliesProvidedFields(t *testing.T) {
	svc, repo, _ := newResourceService(t)
	video, err := svc.AddVideo(context.Background(), "drsmith", VideoInput{
		Title:    "Old",
		VideoURL: "https://example.com/v/old",
	})
	require.NoError(t, err)

	title := "New"
	updated, err := svc.Update(context.Background(), video.ID, ResourceUpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "https://example.com/v/old", updated.VideoURL)
	assert.Equal(t, "New", repo.resources[video.ID].Title)
}

func TestUpdateWithNoFieldsFails(t *testing.T) {
	svc, _, _ := newResourceService(t)
	video, err := svc.AddVideo(context.Background(), "drsmith", VideoInput{
		Title:    "Keep",
		VideoURL: "https://example.com/v/keep",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), video.ID, ResourceUpdateInput{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "No fields to update", domainErr.Message)
}

func TestDeletePDFRemovesStoredFile(t *testing.T) {
	svc, repo, dir := newResourceService(t)
	resource, err := svc.UploadPDF(context.Background(), "drsmith", PDFUploadInput{
		FileName: "guide.pdf",
		Data:     []byte("%PDF"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), resource.ID))
	assert.Empty(t, repo.resources)

	_, err = os.Stat(filepath.Join(dir, resource.FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteUnknownResourceIsNotFound(t *testing.T) {
	svc, _, _ := newResourceService(t)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestListByTypeFiltersResources(t *testing.T) {
	svc, _, _ := newResourceService(t)

	_, err := svc.AddVideo(context.Background(), "drsmith", VideoInput{
		Title:    "Video",
		VideoURL: "https://example.com/v/1",
	})
	require.NoError(t, err)
	_, err = svc.AddArticle(context.Background(), "drsmith", "Article", "body", "")
	require.NoError(t, err)

	videos, err := svc.ListByType(context.Background(), domain.ResourceTypeVideo)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "Video", videos[0].Title)

	articles, err := svc.ListByType(context.Background(), domain.ResourceTypeArticle)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "general", articles[0].Category)
}
