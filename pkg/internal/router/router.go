// Package router 管理 HTTP 路由，将路径、角色要求与处理器绑定到 gin 引擎.
package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	appcache "github.com/yeisme/goatdesk/pkg/cache"
	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/handle"
	"github.com/yeisme/goatdesk/pkg/middleware"
)

// APIPrefix 业务接口前缀.
const APIPrefix = "/api/v1"

// Options 路由依赖.
type Options struct {
	// Cache 响应缓存，nil 时不缓存.
	Cache *appcache.Cache
	// CacheConfig 响应缓存配置.
	CacheConfig configs.CacheConfig
	// MediaPrefix 媒体文件的 URL 前缀，如 /uploads/.
	MediaPrefix string
}

// routes 路由注册时共用的中间件.
type routes struct {
	cached gin.HandlersChain
	editor gin.HandlerFunc
	admin  gin.HandlerFunc
}

// Register 绑定全部路由：
//
//	GET  /health, /health/ready
//	GET  <media prefix>*path
//	/api/v1/products, /videos, /messages, /upload, /upload-video, /cleanup-files, /auth/login, /scheduler/jobs
func Register(e *gin.Engine, opts Options) {
	RegisterHealthCheckRoute(e.Group(""))
	RegisterMediaRoute(e, opts.MediaPrefix)
	RegisterSwaggerRoute(e)

	api := e.Group(APIPrefix, gzip.Gzip(gzip.DefaultCompression))

	r := routes{
		editor: middleware.RequireMinRole(middleware.RoleEditor),
		admin:  middleware.RequireMinRole(middleware.RoleAdmin),
	}

	if opts.Cache != nil && opts.CacheConfig.Enabled {
		api.Use(middleware.InvalidateCacheMiddleware(opts.Cache))
		r.cached = gin.HandlersChain{middleware.CacheMiddleware(middleware.CacheConfigFrom(opts.Cache, opts.CacheConfig))}
	}

	api.POST("/auth/login", handle.Login)

	r.goats(api)
	r.videos(api)
	r.messages(api)
	r.uploads(api)
	r.ops(api)
}

// get 注册只读路由，启用缓存时挂载缓存中间件.
func (r routes) get(g *gin.RouterGroup, path string, h gin.HandlerFunc) {
	chain := append(gin.HandlersChain{}, r.cached...)
	g.GET(path, append(chain, h)...)
}
