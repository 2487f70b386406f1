package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/mediahub/config"
	"github.com/d60-Lab/mediahub/internal/api/handler"
	"github.com/d60-Lab/mediahub/internal/api/middleware"
	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/internal/repository"
	"github.com/d60-Lab/mediahub/internal/service"
	"github.com/d60-Lab/mediahub/internal/testsupport"
	"github.com/d60-Lab/mediahub/pkg/ident"
	"github.com/d60-Lab/mediahub/pkg/oss"
)

type memUploader struct{}

func (memUploader) Upload(_ context.Context, obj oss.Object) (string, error) {
	if _, err := io.Copy(io.Discard, obj.Body); err != nil {
		return "", err
	}
	return "http://blob.local/" + obj.Key, nil
}

func (memUploader) Remove(context.Context, string) error { return nil }

type apiSuite struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	cfg    *config.Config
}

func newSuite(t *testing.T) *apiSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testsupport.OpenDB(t)

	cfg := &config.Config{
		Server:  config.ServerConfig{RequestTimeout: 5 * time.Second, MaxUploadMB: 1},
		JWT:     config.JWTConfig{Secret: "test-secret", Issuer: "mediahub"},
		Tracing: config.TracingConfig{ServiceName: "mediahub-test"},
	}

	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	h := handler.NewHandler(handler.Services{
		Video:        service.NewVideoService(videoRepo, memUploader{}),
		Comment:      service.NewCommentService(commentRepo, videoRepo),
		Like:         service.NewLikeService(repository.NewLikeRepository(db), videoRepo, commentRepo, repository.NewTweetRepository(db), nil),
		Subscription: service.NewSubscriptionService(repository.NewSubscriptionRepository(db), repository.NewUserRepository(db), nil),
		Analytics:    service.NewAnalyticsService(repository.NewStatsRepository(db), videoRepo),
	}, cfg.Server.MaxUploadMB<<20)

	return &apiSuite{t: t, db: db, router: NewRouter(cfg, h, Options{DB: db}), cfg: cfg}
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
	} `json:"pagination"`
	Error *struct {
		Kind  string            `json:"kind"`
		Input map[string]string `json:"input"`
	} `json:"error"`
}

func (s *apiSuite) do(actor, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if actor != "" {
		token, err := middleware.IssueToken(s.cfg.JWT.Secret, s.cfg.JWT.Issuer, actor, time.Minute)
		require.NoError(s.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiSuite) json(actor, method, path string, payload any) *httptest.ResponseRecorder {
	s.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(s.t, err)
		body = bytes.NewReader(raw)
	}
	return s.do(actor, method, path, body, "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealthIsPublic(t *testing.T) {
	s := newSuite(t)
	w := s.do("", http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	s := newSuite(t)
	w := s.do("", http.MethodGet, "/api/v1/videos", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubscribeToggleOverHTTP(t *testing.T) {
	s := newSuite(t)
	fan := testsupport.SeedUser(t, s.db, "fan")
	ch := testsupport.SeedUser(t, s.db, "channel")

	w := s.json(fan.ID, http.MethodPost, "/api/v1/subscriptions/"+ch.ID, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.json(fan.ID, http.MethodGet, "/api/v1/subscriptions/user/"+fan.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 1, env.Pagination.Total)

	w = s.json(fan.ID, http.MethodPost, "/api/v1/subscriptions/"+ch.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.json(fan.ID, http.MethodGet, "/api/v1/subscriptions/"+ch.ID+"/subscribers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decode(t, w)
	assert.JSONEq(t, "[]", string(env.Data))
	assert.EqualValues(t, 0, env.Pagination.Total)
}

func TestErrorKindsOverHTTP(t *testing.T) {
	s := newSuite(t)
	u := testsupport.SeedUser(t, s.db, "u")

	w := s.json(u.ID, http.MethodPost, "/api/v1/subscriptions/"+u.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationFailure", decode(t, w).Error.Kind)

	w = s.json(u.ID, http.MethodPost, "/api/v1/likes/video/xyz", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "InvalidReference", env.Error.Kind)
	assert.Equal(t, "xyz", env.Error.Input["videoId"])

	w = s.json(u.ID, http.MethodPost, "/api/v1/likes/video/"+ident.New(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TargetNotFound", decode(t, w).Error.Kind)

	w = s.json(u.ID, http.MethodGet, "/api/v1/videos?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidPagination", decode(t, w).Error.Kind)

	w = s.json(u.ID, http.MethodGet, "/api/v1/videos?sortBy=password", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidSort", decode(t, w).Error.Kind)

	w = s.json(u.ID, http.MethodPost, "/api/v1/comments", map[string]string{"videoId": ident.New()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationFailure", decode(t, w).Error.Kind)
}

func TestVideoLifecycleOverHTTP(t *testing.T) {
	s := newSuite(t)
	owner := testsupport.SeedUser(t, s.db, "owner")
	viewer := testsupport.SeedUser(t, s.db, "viewer")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "My first video"))
	require.NoError(t, mw.WriteField("description", "hello world"))
	fw, err := mw.CreateFormFile("videoFile", "clip.mp4")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake video bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := s.do(owner.ID, http.MethodPost, "/api/v1/videos", &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var video model.Video
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &video))
	assert.Equal(t, owner.ID, video.OwnerID)
	assert.True(t, video.IsPublished)

	w = s.json(viewer.ID, http.MethodPost, "/api/v1/comments", map[string]string{
		"videoId": video.ID, "userId": viewer.ID, "content": "great",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.json(viewer.ID, http.MethodPost, "/api/v1/likes/video/"+video.ID, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.json(owner.ID, http.MethodGet, "/api/v1/channels/"+owner.ID+"/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats service.ChannelStats
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.Equal(t, service.ChannelStats{TotalVideos: 1, TotalLikes: 1}, stats)

	w = s.json(owner.ID, http.MethodPatch, "/api/v1/videos/"+video.ID+"/publish", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.json(owner.ID, http.MethodDelete, "/api/v1/videos/"+video.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
	assert.Zero(t, testsupport.Count(t, s.db, &model.Comment{}, "video_id = ?", video.ID))

	w = s.json(owner.ID, http.MethodDelete, "/api/v1/videos/"+video.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.json(owner.ID, http.MethodGet, "/api/v1/videos/"+video.ID+"/comments", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentAuthorMustBeActor(t *testing.T) {
	s := newSuite(t)
	owner := testsupport.SeedUser(t, s.db, "owner")
	mallory := testsupport.SeedUser(t, s.db, "mallory")
	v := testsupport.SeedVideo(t, s.db, owner.ID, "v", 0)

	w := s.json(mallory.ID, http.MethodPost, "/api/v1/comments", map[string]string{
		"videoId": v.ID, "userId": owner.ID, "content": "posted as someone else",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "ValidationFailure", env.Error.Kind)
	assert.Equal(t, owner.ID, env.Error.Input["userId"])
	assert.Zero(t, testsupport.Count(t, s.db, &model.Comment{}, "video_id = ?", v.ID))

	w = s.json(mallory.ID, http.MethodPost, "/api/v1/comments", map[string]string{
		"videoId": v.ID, "userId": mallory.ID, "content": "my own words",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}
