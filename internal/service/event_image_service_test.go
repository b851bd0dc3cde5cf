package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/wellbeing-service/internal/config"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	apperrors "github.com/spec-kit/wellbeing-service/pkg/util"
)

type stubEventImageRepo struct {
	images map[string]*domain.EventImage
	nextID int
}

func newStubEventImageRepo() *stubEventImageRepo {
	return &stubEventImageRepo{images: make(map[string]*domain.EventImage)}
}

func (r *stubEventImageRepo) Create(_ context.Context, image *domain.EventImage) error {
	r.nextID++
	image.ID = fmt.Sprintf("img-%d", r.nextID)
	stored := *image
	r.images[image.ID] = &stored
	return nil
}

func (r *stubEventImageRepo) List(context.Context) ([]domain.EventImage, error) {
	var out []domain.EventImage
	for _, image := range r.images {
		out = append(out, *image)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *stubEventImageRepo) GetByID(_ context.Context, id string) (*domain.EventImage, error) {
	image, ok := r.images[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *image
	return &copied, nil
}

func (r *stubEventImageRepo) UpdatePosition(_ context.Context, id string, position int) error {
	image, ok := r.images[id]
	if !ok {
		return pgx.ErrNoRows
	}
	image.Position = position
	return nil
}

func (r *stubEventImageRepo) Delete(_ context.Context, id string) error {
	delete(r.images, id)
	return nil
}

func (r *stubEventImageRepo) Count(context.Context) (int, error) {
	return len(r.images), nil
}

func newEventImageService(t *testing.T) (*EventImageService, *stubEventImageRepo, string) {
	t.Helper()
	repo := newStubEventImageRepo()
	dir := t.TempDir()
	svc := NewEventImageService(config.StorageConfig{EventImageDir: dir}, repo, zap.NewNop())
	return svc, repo, dir
}

func TestUploadImageStoresFileAndAppendsToSlider(t *testing.T) {
	svc, repo, dir := newEventImageService(t)

	first, err := svc.Upload(context.Background(), "drsmith", ImageUploadInput{
		FileName: "welcome.png",
		Data:     []byte("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, "Event", first.Title)

	second, err := svc.Upload(context.Background(), "drsmith", ImageUploadInput{
		Title:    "Open day",
		FileName: "open-day.jpg",
		Data:     []byte("jpg-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, "Open day", second.Title)

	data, err := os.ReadFile(filepath.Join(dir, first.FileName))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Len(t, repo.images, 2)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	svc, repo, _ := newEventImageService(t)

	_, err := svc.Upload(context.Background(), "drsmith", ImageUploadInput{
		FileName: "report.pdf",
		Data:     []byte("%PDF"),
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "Only image files are allowed", domainErr.Message)
	assert.Empty(t, repo.images)
}

func TestReorderMovesImage(t *testing.T) {
	svc, repo, _ := newEventImageService(t)
	image, err := svc.Upload(context.Background(), "drsmith", ImageUploadInput{
		FileName: "a.png",
		Data:     []byte("a"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reorder(context.Background(), image.ID, 5))
	assert.Equal(t, 5, repo.images[image.ID].Position)
}

func TestReorderRejectsNegativePosition(t *testing.T) {
	svc, _, _ := newEventImageService(t)

	err := svc.Reorder(context.Background(), "img-1", -1)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
}

func TestReorderUnknownImageIsNotFound(t *testing.T) {
	svc, _, _ := newEventImageService(t)

	err := svc.Reorder(context.Background(), "missing", 2)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestDeleteImageRemovesStoredFile(t *testing.T) {
	svc, repo, dir := newEventImageService(t)
	image, err := svc.Upload(context.Background(), "drsmith", ImageUploadInput{
		FileName: "a.png",
		Data:     []byte("a"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), image.ID))
	assert.Empty(t, repo.images)

	_, err = os.Stat(filepath.Join(dir, image.FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestListReturnsSliderOrder(t *testing.T) {
	svc, repo, _ := newEventImageService(t)

	first, err := svc.Upload(context.Background(), "drsmith", ImageUploadInput{FileName: "a.png", Data: []byte("a")})
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), "drsmith", ImageUploadInput{FileName: "b.png", Data: []byte("b")})
	require.NoError(t, err)

	require.NoError(t, svc.Reorder(context.Background(), first.ID, 9))

	images, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, second.ID, images[0].ID)
	assert.Equal(t, first.ID, images[1].ID)
	assert.Len(t, repo.images, 2)
}
