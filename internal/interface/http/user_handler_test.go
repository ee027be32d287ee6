package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/oksasatya/go-user-accounts/internal/application"
	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopMailer struct{}

func (nopMailer) Send(ctx context.Context, to, subject, html string) error { return nil }

type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[objectPath] = b
	return "https://cdn.test/" + objectPath, nil
}

func newUploadRig(t *testing.T, storage userapp.ObjectStorage) (*gin.Engine, *entity.User, string) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := memory.NewUserRepository()
	jwt := helpers.NewJWTManager("secret", time.Hour)
	svc := userapp.NewService(users, memory.NewEmailCodeRepository(users), nopMailer{}, jwt, logger)
	svc.Storage = storage

	u := &entity.User{ID: "u1", FirstName: "Ada", Email: "ada@example.com"}
	require.NoError(t, users.Create(context.Background(), u))
	token, _, err := jwt.Sign(userapp.SessionUserOf(u))
	require.NoError(t, err)

	h := NewUserHandler(svc, logger, "", false)
	r := gin.New()
	r.Use(middleware.ErrorHandler(logger))
	r.POST("/users/me/image", middleware.Auth(jwt), h.UploadImage)
	return r, u, token
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	store := &memStorage{objects: map[string][]byte{}}
	r, u, token := newUploadRig(t, store)

	body, ct := multipartBody(t, "image", "avatar.JPG", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/users/me/image", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, store.objects, 1)
	for path, b := range store.objects {
		assert.True(t, strings.HasPrefix(path, "avatars/"+u.ID+"/"))
		assert.True(t, strings.HasSuffix(path, ".jpg"))
		assert.Equal(t, "jpeg-bytes", string(b))
		assert.Contains(t, w.Body.String(), `"image":"https://cdn.test/`+path+`"`)
	}
}

func TestUploadImage_MissingFile(t *testing.T) {
	r, _, token := newUploadRig(t, &memStorage{objects: map[string][]byte{}})

	body, ct := multipartBody(t, "other", "avatar.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/users/me/image", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid payload","details":{"image":"is required"}}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name   string
		checks map[string]Check
		status int
		body   string
	}{
		{
			name:   "all ok",
			checks: map[string]Check{"db": func(context.Context) error { return nil }},
			status: http.StatusOK,
			body:   `{"status":"ok","checks":{"db":"ok"}}`,
		},
		{
			name: "one down",
			checks: map[string]Check{
				"db":    func(context.Context) error { return nil },
				"redis": func(context.Context) error { return errors.New("connection refused") },
			},
			status: http.StatusServiceUnavailable,
			body:   `{"status":"degraded","checks":{"db":"ok","redis":"connection refused"}}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/healthz", NewHealthHandler(tc.checks).Health)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestToUserResponse_OmitsPassword(t *testing.T) {
	resp := toUserResponse(&entity.User{ID: "u1", Password: "$2a$10$hash"})
	r := gin.New()
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, resp) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, w.Body.String(), "hash")
	assert.NotContains(t, w.Body.String(), "password")
}
