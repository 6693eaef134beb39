package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/middleware"
)

// stubParser 按固定令牌返回角色.
type stubParser map[string]string

func (p stubParser) Parse(token string) (*service.Claims, error) {
	role, ok := p[token]
	if !ok {
		return nil, errors.New("bad token")
	}

	c := &service.Claims{Role: role}
	c.Subject = "user-" + role

	return c, nil
}

func newAuthEngine(conf configs.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	parser := stubParser{"t-admin": "admin", "t-editor": "editor", "t-viewer": "viewer"}

	whoami := func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRole(c).String()+"|"+middleware.GetSubject(c))
	}

	e := gin.New()
	e.Use(middleware.AuthMiddleware(conf, parser))
	e.GET("/api/v1/products", whoami)
	e.POST("/api/v1/products", middleware.RequireMinRole(middleware.RoleEditor), whoami)
	e.POST("/api/v1/cleanup-files", middleware.RequireMinRole(middleware.RoleAdmin), whoami)
	e.POST("/api/v1/videos/:id/like", whoami)
	e.GET("/metrics", whoami)

	return e
}

func TestAuthMiddleware(t *testing.T) {
	enabled := configs.AuthConfig{
		Enabled:      true,
		SkipPaths:    []string{"/metrics"},
		PublicRoutes: []string{"POST /api/v1/videos/:id/like"},
	}
	readLocked := enabled
	readLocked.ReadRequiresAuth = true

	cases := []struct {
		name   string
		conf   configs.AuthConfig
		method string
		path   string
		token  string
		status int
		body   string
	}{
		{"disabled means admin", configs.AuthConfig{}, http.MethodPost, "/api/v1/cleanup-files", "", 200, "admin|"},
		{"anonymous read", enabled, http.MethodGet, "/api/v1/products", "", 200, "viewer|"},
		{"anonymous write", enabled, http.MethodPost, "/api/v1/products", "", 401, ""},
		{"public route", enabled, http.MethodPost, "/api/v1/videos/3/like", "", 200, "viewer|"},
		{"skipped path", readLocked, http.MethodGet, "/metrics", "", 200, "viewer|"},
		{"read requires auth", readLocked, http.MethodGet, "/api/v1/products", "", 401, ""},
		{"invalid token", enabled, http.MethodGet, "/api/v1/products", "nope", 401, ""},
		{"editor writes", enabled, http.MethodPost, "/api/v1/products", "t-editor", 200, "editor|user-editor"},
		{"viewer cannot write", enabled, http.MethodPost, "/api/v1/products", "t-viewer", 403, ""},
		{"editor cannot sweep", enabled, http.MethodPost, "/api/v1/cleanup-files", "t-editor", 403, ""},
		{"admin sweeps", enabled, http.MethodPost, "/api/v1/cleanup-files", "t-admin", 200, "admin|user-admin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newAuthEngine(tc.conf)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}

			w := httptest.NewRecorder()
			e.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.status, w.Body.String())
			}

			if tc.body != "" && w.Body.String() != tc.body {
				t.Fatalf("body = %q, want %q", w.Body.String(), tc.body)
			}
		})
	}
}

func TestAuthMiddleware_WithIssuedToken(t *testing.T) {
	conf := configs.AuthConfig{Enabled: true, JWTSecret: "k", Issuer: "goatdesk", TokenTTL: time.Minute}
	auth := service.NewAuthService(conf)

	token, _, err := auth.Issue("admin", service.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.Use(middleware.AuthMiddleware(conf, auth))
	e.DELETE("/x", middleware.RequireMinRole(middleware.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetSubject(c))
	})

	req := httptest.NewRequest(http.MethodDelete, "/x", nil)
	req.Header.Set("Authorization", "bearer "+token)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "admin" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.Use(middleware.RequestIDMiddleware())
	e.GET("/", func(c *gin.Context) { c.String(http.StatusOK, middleware.GetRequestID(c)) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(middleware.HeaderRequestID)
	if id == "" || id != w.Body.String() {
		t.Fatalf("generated id = %q, body %q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")

	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if got := w.Header().Get(middleware.HeaderRequestID); got != "abc-123" {
		t.Fatalf("propagated id = %q", got)
	}
}
