package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/middleware"
)

func newBreakerEngine(cfg configs.CircuitBreakerConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.Use(middleware.CircuitBreakerMiddleware(cfg))
	e.GET("/api/v1/stats", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	e.GET("/api/v1/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	e.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	e.GET("/uploads/*path", func(c *gin.Context) { c.Status(http.StatusOK) })

	return e
}

func get(e *gin.Engine, path string) int {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w.Code
}

func TestCircuitBreaker_OpensAndSkipsPaths(t *testing.T) {
	e := newBreakerEngine(configs.CircuitBreakerConfig{
		Enabled:           true,
		FailureRate:       0.5,
		MinRequests:       2,
		IntervalSeconds:   60,
		TimeoutSeconds:    60,
		MaxRequestsInHalf: 1,
		SkipPaths:         configs.DefaultCBSkipPaths,
	})

	assert.Equal(t, http.StatusInternalServerError, get(e, "/api/v1/stats"))
	assert.Equal(t, http.StatusInternalServerError, get(e, "/api/v1/stats"))

	// 打开后 API 请求被拒绝
	assert.Equal(t, http.StatusServiceUnavailable, get(e, "/api/v1/products"))

	// 探活与媒体文件不受影响
	assert.Equal(t, http.StatusOK, get(e, "/health"))
	assert.Equal(t, http.StatusOK, get(e, "/uploads/goat-1.jpg"))
}

func TestCircuitBreaker_Disabled(t *testing.T) {
	e := newBreakerEngine(configs.CircuitBreakerConfig{MinRequests: 1, FailureRate: 0.1})

	for range 3 {
		assert.Equal(t, http.StatusInternalServerError, get(e, "/api/v1/stats"))
	}

	assert.Equal(t, http.StatusOK, get(e, "/api/v1/products"))
}

func TestCircuitBreakerConfig_Skipped(t *testing.T) {
	cfg := configs.CircuitBreakerConfig{SkipPaths: []string{"", "/health"}}

	assert.True(t, cfg.Skipped("/health/ready"))
	assert.False(t, cfg.Skipped("/api/v1/products"))
}
