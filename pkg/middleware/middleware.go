// Package middleware 提供 HTTP 中间件：认证与角色、响应缓存、指标、追踪、限流、熔断与请求日志.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID 请求 ID 头.
const HeaderRequestID = "X-Request-ID"

const requestIDKey = "request_id"

// RequestIDMiddleware 透传或生成请求 ID，并写回响应头.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID 返回当前请求 ID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
