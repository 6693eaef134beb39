package middleware

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/configs"
)

// CORSMiddleware CORS中间件，server.cors_origins 为空或包含 * 时放开所有来源.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", HeaderRequestID, "X-Cache-Bypass")
	config.ExposeHeaders = []string{HeaderRequestID, "X-Cache", "ETag"}

	if cfg.Debug || len(cfg.CORSOrigins) == 0 || slices.Contains(cfg.CORSOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = cfg.CORSOrigins
	}

	return cors.New(config)
}
