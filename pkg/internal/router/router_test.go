package router_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/model"
	"github.com/yeisme/goatdesk/pkg/internal/router"
	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/internal/storage"
	"github.com/yeisme/goatdesk/pkg/internal/storage/db"
	"github.com/yeisme/goatdesk/pkg/internal/storage/media"
	"github.com/yeisme/goatdesk/pkg/middleware"
)

type server struct {
	engine *gin.Engine
	db     *db.Client
	fs     afero.Fs
}

func newServer(t *testing.T, mutate ...func(*configs.AppConfig)) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := configs.Default()
	for _, m := range mutate {
		m(&cfg)
	}

	configs.SetConfig(cfg)
	t.Cleanup(func() { configs.SetConfig(configs.Default()) })

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	client := db.Wrap(gdb)
	require.NoError(t, client.Migrate(context.Background(), model.All()...))

	fsys := afero.NewMemMapFs()
	store := media.NewLocalStoreFs(fsys, cfg.Media.Prefix())
	mgr := storage.NewManager(client, store, nil, nil)

	e := gin.New()
	e.Use(
		middleware.StorageMiddleware(mgr),
		middleware.AuthMiddleware(cfg.Auth, service.NewAuthService(cfg.Auth)),
	)
	router.Register(e, router.Options{MediaPrefix: cfg.Media.Prefix()})

	return &server{engine: e, db: client, fs: fsys}
}

func (s *server) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader = http.NoBody

	switch b := body.(type) {
	case nil:
	case io.Reader:
		r = b
	default:
		raw, err := sonic.Marshal(b)
		require.NoError(t, err)

		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &out), w.Body.String())

	return out
}

func (s *server) seed(t *testing.T, names ...string) {
	t.Helper()

	for _, n := range names {
		require.NoError(t, afero.WriteFile(s.fs, "/"+n, []byte("data-"+n), 0o644))
	}
}

func (s *server) exists(name string) bool {
	ok, _ := afero.Exists(s.fs, "/"+name)
	return ok
}

func goatBody(images ...string) map[string]any {
	return map[string]any{
		"name":      "Daisy",
		"breed":     "Boer",
		"age":       "2 years",
		"weight":    "45kg",
		"price":     "1200.50",
		"gender":    "Female",
		"imageUrls": images,
	}
}

type goatJSON struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	Images          []string `json:"images"`
	DescriptionText string   `json:"descriptionText"`
}

func TestProductsCRUD(t *testing.T) {
	s := newServer(t)
	s.seed(t, "goat-a.jpg", "goat-b.jpg", "goat-c.jpg")

	w := s.do(t, http.MethodPost, "/api/v1/products", goatBody("/uploads/goat-a.jpg", "/uploads/goat-b.jpg", "/uploads/goat-c.jpg"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[goatJSON](t, w)
	assert.Equal(t, 1200.5, created.Price)
	assert.Len(t, created.Images, 3)

	w = s.do(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]goatJSON](t, w), 1)

	path := "/api/v1/products/" + itoa(created.ID)

	w = s.do(t, http.MethodPut, path, goatBody("/uploads/goat-a.jpg"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"/uploads/goat-a.jpg"}, decode[goatJSON](t, w).Images)
	assert.False(t, s.exists("goat-b.jpg"))
	assert.False(t, s.exists("goat-c.jpg"))

	w = s.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Goat deleted successfully","deletedFiles":1,"referencedFiles":1}`, w.Body.String())
	assert.False(t, s.exists("goat-a.jpg"))

	w = s.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Goat not found","deletedFiles":0}`, w.Body.String())

	w = s.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Goat not found"}`, w.Body.String())
}

func TestProducts_FirstRequestInvalid(t *testing.T) {
	s := newServer(t)

	body := goatBody()
	delete(body, "name")
	delete(body, "gender")
	body["price"] = -5

	w := s.do(t, http.MethodPost, "/api/v1/products", body)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "name is required")
	assert.Contains(t, w.Body.String(), "price must be greater than 0")

	w = s.do(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestProducts_BadRequests(t *testing.T) {
	s := newServer(t)

	for _, p := range []string{"/api/v1/products/abc", "/api/v1/products/0", "/api/v1/products/-1"} {
		w := s.do(t, http.MethodGet, p, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, p)
		assert.JSONEq(t, `{"error":"Invalid goat ID"}`, w.Body.String())
	}

	w := s.do(t, http.MethodDelete, "/api/v1/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := goatBody()
	delete(body, "name")

	w = s.do(t, http.MethodPost, "/api/v1/products", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = goatBody()
	body["price"] = "cheap"

	w = s.do(t, http.MethodPost, "/api/v1/products", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/products/77", goatBody())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	require.NoError(t, err)

	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadAndServe(t *testing.T) {
	s := newServer(t)

	// 最小的合法 GIF 不在白名单内
	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
	body, ct := multipartBody(t, "file", "a.gif", "image/gif", gif)

	w := s.do(t, http.MethodPost, "/api/v1/upload", body, "Content-Type", ct)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	body, ct = multipartBody(t, "other", "a.png", "image/png", []byte("x"))
	w = s.do(t, http.MethodPost, "/api/v1/upload", body, "Content-Type", ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No file uploaded"}`, w.Body.String())

	clip := []byte("fake-mp4-bytes")
	body, ct = multipartBody(t, "video", "clip.mp4", "video/mp4", clip)

	w = s.do(t, http.MethodPost, "/api/v1/upload-video", body, "Content-Type", ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res := decode[struct {
		Message  string `json:"message"`
		VideoURL string `json:"videoUrl"`
	}](t, w)
	assert.Equal(t, "Video uploaded successfully", res.Message)
	assert.True(t, strings.HasPrefix(res.VideoURL, "/uploads/videos/video-"), res.VideoURL)

	w = s.do(t, http.MethodGet, res.VideoURL, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, clip, w.Body.Bytes())

	w = s.do(t, http.MethodGet, "/uploads/missing.jpg", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpload_TooLarge(t *testing.T) {
	s := newServer(t, func(c *configs.AppConfig) {
		c.Media.Video.MaxSizeMB = 1
	})

	body, ct := multipartBody(t, "video", "big.mp4", "video/mp4", make([]byte, 3<<20))

	w := s.do(t, http.MethodPost, "/api/v1/upload-video", body, "Content-Type", ct)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
}

func TestCleanupFiles(t *testing.T) {
	s := newServer(t)
	s.seed(t, "goat-1.jpg", "goat-2.jpg", "readme.txt")

	w := s.do(t, http.MethodPost, "/api/v1/products", goatBody("/uploads/goat-1.jpg"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/cleanup-files", map[string]any{"dryRun": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, s.exists("goat-2.jpg"))

	w = s.do(t, http.MethodPost, "/api/v1/cleanup-files", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res := decode[struct {
		DeletedFiles  int      `json:"deletedFiles"`
		TotalFiles    int      `json:"totalFiles"`
		OrphanedFiles []string `json:"orphanedFiles"`
	}](t, w)
	assert.Equal(t, 1, res.DeletedFiles)
	assert.Equal(t, 2, res.TotalFiles)
	assert.Equal(t, []string{"goat-2.jpg"}, res.OrphanedFiles)
	assert.True(t, s.exists("goat-1.jpg"))
	assert.True(t, s.exists("readme.txt"))
}

func TestVideosAndMessages(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/videos", map[string]any{"title": "Kids", "videoUrl": "https://example.com/v.mp4"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	id := decode[struct {
		ID uint `json:"id"`
	}](t, w).ID

	w = s.do(t, http.MethodPost, "/api/v1/videos/"+itoa(id)+"/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[struct {
		Likes int `json:"likes"`
	}](t, w).Likes)

	w = s.do(t, http.MethodPost, "/api/v1/videos/999/like", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, s.db.Create(&model.ContactMessage{Name: "Ann", Email: "a@example.com", Message: "hi"}).Error)

	w = s.do(t, http.MethodGet, "/api/v1/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.ContactMessage](t, w), 1)

	w = s.do(t, http.MethodDelete, "/api/v1/messages/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/messages/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatsAndHealth(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalGoats":0`)

	w = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 未注入调度器
	w = s.do(t, http.MethodGet, "/api/v1/scheduler/jobs", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"scheduler not running"}`, w.Body.String())
}

func TestAuthenticatedWrites(t *testing.T) {
	hash, err := service.HashPassword("s3cret")
	require.NoError(t, err)

	s := newServer(t, func(c *configs.AppConfig) {
		c.Auth.Enabled = true
		c.Auth.JWTSecret = "router-test-secret"
		c.Auth.AdminPasswordHash = hash
		c.Auth.TokenTTL = time.Hour
	})

	w := s.do(t, http.MethodPost, "/api/v1/products", goatBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 留言需要 editor，访客只读也不行
	w = s.do(t, http.MethodGet, "/api/v1/messages", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 点赞为公开路由，不需要令牌
	w = s.do(t, http.MethodPost, "/api/v1/videos/1/like", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/products", goatBody(), "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := decode[struct {
		Token string `json:"token"`
	}](t, w).Token

	w = s.do(t, http.MethodPost, "/api/v1/products", goatBody(), "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/cleanup-files", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
