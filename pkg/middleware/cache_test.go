package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	appcache "github.com/yeisme/goatdesk/pkg/cache"
	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/storage/kv"
	"github.com/yeisme/goatdesk/pkg/middleware"
)

type cacheFixture struct {
	engine *gin.Engine
	hits   int
}

func newCacheFixture(t *testing.T) *cacheFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("kv: %v", err)
	}

	c := appcache.NewNamespace(store, "resp")
	f := &cacheFixture{engine: gin.New()}

	cached := middleware.CacheMiddleware(middleware.CacheConfigFrom(c, configs.CacheConfig{Enabled: true}))

	api := f.engine.Group("/api", middleware.InvalidateCacheMiddleware(c))
	api.GET("/products", cached, func(ctx *gin.Context) {
		f.hits++
		ctx.JSON(http.StatusOK, gin.H{"count": f.hits})
	})
	api.GET("/missing", cached, func(ctx *gin.Context) {
		f.hits++
		ctx.JSON(http.StatusNotFound, gin.H{"error": "nope"})
	})
	api.POST("/products", func(ctx *gin.Context) { ctx.Status(http.StatusCreated) })
	api.POST("/broken", func(ctx *gin.Context) { ctx.Status(http.StatusBadRequest) })

	return f
}

func (f *cacheFixture) do(method, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	return w
}

func TestCacheMiddleware_HitAndInvalidate(t *testing.T) {
	f := newCacheFixture(t)

	w := f.do(http.MethodGet, "/api/products")
	if w.Header().Get("X-Cache") != "MISS" || w.Body.String() != `{"count":1}` {
		t.Fatalf("first get: %s %q", w.Header().Get("X-Cache"), w.Body.String())
	}

	w = f.do(http.MethodGet, "/api/products")
	if w.Header().Get("X-Cache") != "HIT" || w.Body.String() != `{"count":1}` || f.hits != 1 {
		t.Fatalf("second get: %s %q hits=%d", w.Header().Get("X-Cache"), w.Body.String(), f.hits)
	}

	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag on cached response")
	}

	w = f.do(http.MethodGet, "/api/products", "If-None-Match", etag)
	if w.Code != http.StatusNotModified {
		t.Fatalf("conditional get = %d", w.Code)
	}

	// 不同身份使用不同的缓存项
	w = f.do(http.MethodGet, "/api/products", "Authorization", "Bearer x")
	if w.Header().Get("X-Cache") != "MISS" || f.hits != 2 {
		t.Fatalf("vary get: %s hits=%d", w.Header().Get("X-Cache"), f.hits)
	}

	// 失败的写请求不清空缓存
	f.do(http.MethodPost, "/api/broken")

	if w = f.do(http.MethodGet, "/api/products"); w.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("after failed write: %s", w.Header().Get("X-Cache"))
	}

	f.do(http.MethodPost, "/api/products")

	w = f.do(http.MethodGet, "/api/products")
	if w.Header().Get("X-Cache") != "MISS" || f.hits != 3 {
		t.Fatalf("after write: %s hits=%d", w.Header().Get("X-Cache"), f.hits)
	}
}

func TestCacheMiddleware_SkipsErrorsAndBypass(t *testing.T) {
	f := newCacheFixture(t)

	f.do(http.MethodGet, "/api/missing")
	f.do(http.MethodGet, "/api/missing")

	if f.hits != 2 {
		t.Fatalf("404 responses should not be cached, hits=%d", f.hits)
	}

	f.do(http.MethodGet, "/api/products")
	f.do(http.MethodGet, "/api/products", "X-Cache-Bypass", "1")

	if f.hits != 4 {
		t.Fatalf("bypass header should skip cache, hits=%d", f.hits)
	}
}
