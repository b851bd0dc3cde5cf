package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/wellbeing-service/internal/api/http/handlers"
	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/config"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/service"
)

type memResourceRepo struct {
	resources map[string]*domain.Resource
	nextID    int
}

func (r *memResourceRepo) Create(_ context.Context, resource *domain.Resource) error {
	r.nextID++
	resource.ID = fmt.Sprintf("res-%d", r.nextID)
	stored := *resource
	r.resources[resource.ID] = &stored
	return nil
}

func (r *memResourceRepo) List(context.Context) ([]domain.Resource, error) {
	var out []domain.Resource
	for _, resource := range r.resources {
		out = append(out, *resource)
	}
	return out, nil
}

func (r *memResourceRepo) ListByType(_ context.Context, resourceType domain.ResourceType) ([]domain.Resource, error) {
	var out []domain.Resource
	for _, resource := range r.resources {
		if resource.Type == resourceType {
			out = append(out, *resource)
		}
	}
	return out, nil
}

func (r *memResourceRepo) GetByID(_ context.Context, id string) (*domain.Resource, error) {
	resource, ok := r.resources[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *resource
	return &copied, nil
}

func (r *memResourceRepo) Update(_ context.Context, resource *domain.Resource) error {
	stored := *resource
	r.resources[resource.ID] = &stored
	return nil
}

func (r *memResourceRepo) Delete(_ context.Context, id string) error {
	delete(r.resources, id)
	return nil
}

type memStudentRepo struct {
	students map[string]*domain.Student
}

func (r *memStudentRepo) Create(_ context.Context, s *domain.Student) error {
	r.students[s.Username] = s
	return nil
}

func (r *memStudentRepo) Update(_ context.Context, s *domain.Student) error {
	r.students[s.Username] = s
	return nil
}

func (r *memStudentRepo) Delete(_ context.Context, username string) error {
	delete(r.students, username)
	return nil
}

func (r *memStudentRepo) GetByID(context.Context, string) (*domain.Student, error) {
	return nil, pgx.ErrNoRows
}

func (r *memStudentRepo) GetByUsername(_ context.Context, username string) (*domain.Student, error) {
	s, ok := r.students[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (r *memStudentRepo) SetFeedbackGiven(_ context.Context, username string) error {
	if s, ok := r.students[username]; ok {
		s.HasGivenFeedback = true
	}
	return nil
}

type memCounselorRepo struct {
	counselors map[string]*domain.Counselor
}

func (r *memCounselorRepo) Create(_ context.Context, c *domain.Counselor) error {
	r.counselors[c.Username] = c
	return nil
}

func (r *memCounselorRepo) Update(_ context.Context, c *domain.Counselor) error {
	r.counselors[c.Username] = c
	return nil
}

func (r *memCounselorRepo) Delete(_ context.Context, username string) error {
	delete(r.counselors, username)
	return nil
}

func (r *memCounselorRepo) GetByID(context.Context, string) (*domain.Counselor, error) {
	return nil, pgx.ErrNoRows
}

func (r *memCounselorRepo) GetByUsername(_ context.Context, username string) (*domain.Counselor, error) {
	c, ok := r.counselors[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (r *memCounselorRepo) List(context.Context) ([]domain.Counselor, error) {
	var out []domain.Counselor
	for _, c := range r.counselors {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCounselorRepo) SetFeedbackGiven(_ context.Context, username string) error {
	if c, ok := r.counselors[username]; ok {
		c.HasGivenFeedback = true
	}
	return nil
}

type memFeedbackRepo struct {
	entries []domain.FeedbackEntry
}

func (r *memFeedbackRepo) Create(_ context.Context, e *domain.FeedbackEntry) error {
	e.ID = "entry-1"
	e.CreatedAt = time.Now().UTC()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *memFeedbackRepo) ListAll(context.Context) ([]domain.FeedbackEntry, error) {
	return r.entries, nil
}

type memActivityStore struct {
	counts    map[string]int
	dismissed map[string]bool
}

func (s *memActivityStore) IncrementActivity(_ context.Context, username string) (int64, error) {
	s.counts[username]++
	return int64(s.counts[username]), nil
}

func (s *memActivityStore) ActivityCount(_ context.Context, username string) (int, error) {
	return s.counts[username], nil
}

func (s *memActivityStore) SetDismissed(_ context.Context, username string, _ time.Duration) error {
	s.dismissed[username] = true
	return nil
}

func (s *memActivityStore) IsDismissed(_ context.Context, username string) (bool, error) {
	return s.dismissed[username], nil
}

type testEnv struct {
	app       *fiber.App
	auth      *service.AuthService
	students  *memStudentRepo
	activity  *memActivityStore
	studToken string
	counToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.BcryptCost = 4

	env := &testEnv{
		students: &memStudentRepo{students: make(map[string]*domain.Student)},
		activity: &memActivityStore{counts: make(map[string]int), dismissed: make(map[string]bool)},
	}
	counselors := &memCounselorRepo{counselors: make(map[string]*domain.Counselor)}

	env.auth = service.NewAuthService(cfg, service.AuthDependencies{
		StudentRepo:   env.students,
		CounselorRepo: counselors,
	})
	feedback := service.NewFeedbackService(config.FeedbackConfig{}, service.FeedbackDependencies{
		StudentRepo:   env.students,
		CounselorRepo: counselors,
		FeedbackRepo:  &memFeedbackRepo{},
		ActivityStore: env.activity,
	}, zap.NewNop())

	_, err := env.auth.RegisterStudent(context.Background(), "alice", "password", nil)
	require.NoError(t, err)
	_, err = env.auth.RegisterCounselor(context.Background(), "drsmith", "password", "CBT")
	require.NoError(t, err)

	_, studToken, _, err := env.auth.LoginStudent(context.Background(), "alice", "password")
	require.NoError(t, err)
	env.studToken = studToken

	_, counToken, _, err := env.auth.LoginCounselor(context.Background(), "drsmith", "password")
	require.NoError(t, err)
	env.counToken = counToken

	resources := service.NewResourceService(
		config.StorageConfig{PDFDir: t.TempDir()},
		&memResourceRepo{resources: make(map[string]*domain.Resource)},
		zap.NewNop(),
	)

	env.app = fiber.New()
	RegisterMiddlewares(env.app, zap.NewNop(), nil, 0)
	RegisterRoutes(env.app, RouteConfig{
		Health:         handlers.NewHealthHandler("wellbeing-service", "test", nil, nil),
		Students:       handlers.NewStudentsHandler(env.auth),
		Counselors:     handlers.NewCounselorsHandler(env.auth),
		Feedback:       handlers.NewFeedbackHandler(feedback),
		Appointments:   handlers.NewAppointmentsHandler(nil),
		Notifications:  handlers.NewNotificationsHandler(nil),
		Classifier:     handlers.NewClassifierHandler(nil),
		Resources:      handlers.NewResourcesHandler(resources),
		Events:         handlers.NewEventsHandler(nil),
		AuthMiddleware: auth.NewAuthMiddleware(env.auth.TokenManager(), env.students, counselors),
	})
	return env
}

func (env *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/feedback/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Token is missing", errObj["message"])
}

func TestProtectedRouteRejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/feedback/status", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFeedbackStatusFlow(t *testing.T) {
	env := newTestEnv(t)

	// below the activity threshold
	resp := env.request(t, http.MethodGet, "/api/feedback/status", env.studToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["should_show_feedback"])

	for i := 0; i < 3; i++ {
		resp = env.request(t, http.MethodPost, "/api/feedback/track-activity", env.studToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp = env.request(t, http.MethodGet, "/api/feedback/status", env.studToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, true, body["should_show_feedback"])
	assert.Equal(t, float64(3), body["activity_count"])
}

func TestFeedbackSubmitValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/feedback/submit", env.studToken,
		map[string]any{"rating": 9, "comment": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Rating must be between 1 and 5", errObj["message"])
}

func TestFeedbackSubmitMarksGiven(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/feedback/submit", env.studToken,
		map[string]any{"rating": 5, "comment": "great"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Thank you for your feedback!", body["message"])

	resp = env.request(t, http.MethodGet, "/api/feedback/status", env.studToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, true, body["has_given_feedback"])
	assert.Equal(t, false, body["should_show_feedback"])
}

func TestFeedbackDismissSuppressesStatus(t *testing.T) {
	env := newTestEnv(t)
	env.activity.counts["alice"] = 5

	resp := env.request(t, http.MethodPost, "/api/feedback/dismiss", env.studToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/feedback/status", env.studToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["should_show_feedback"])
}

func TestFeedbackListIsCounselorOnly(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/feedback/all", env.studToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/feedback/all", env.counToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/register", "",
		map[string]any{"username": "alice", "password": "password"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Username already exists", errObj["message"])
}

func TestLoginReturnsTokenAndProfile(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/login/student", "",
		map[string]any{"username": "alice", "password": "password"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "student", user["role"])
}

func TestQueryParameterTokenFallback(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/feedback/status?token="+env.studToken, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func (env *testEnv) uploadPDF(t *testing.T, token, filename string, payload []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("title", "Guide"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resources/upload-pdf", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestResourceWritesAreCounselorOnly(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/resources/add-video", env.studToken,
		map[string]any{"title": "Breathing", "video_url": "https://example.com/v/1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/resources/add-video", env.counToken,
		map[string]any{"title": "Breathing", "video_url": "https://example.com/v/1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Video added successfully!", body["message"])
	assert.NotEmpty(t, body["resource_id"])
}

func TestResourceListingIsPublic(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/resources/add-video", env.counToken,
		map[string]any{"title": "Breathing", "video_url": "https://example.com/v/1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/resources/videos", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "Breathing", out[0]["title"])
	assert.Equal(t, "video", out[0]["resource_type"])
}

func TestUploadPDFEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.uploadPDF(t, env.counToken, "guide.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "PDF uploaded successfully!", body["message"])
	assert.NotEmpty(t, body["filepath"])
}

func TestUploadPDFRejectsOtherExtensions(t *testing.T) {
	env := newTestEnv(t)

	resp := env.uploadPDF(t, env.counToken, "notes.txt", []byte("plain"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Only PDF files are allowed", errObj["message"])
}
