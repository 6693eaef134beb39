// Package handle 提供 HTTP 请求处理器的实现.
//
// 处理器只负责参数解析与状态码映射，业务逻辑在 service 包中完成.
package handle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/log"
)

// DefaultHandler 未实现的路由.
func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "Not Implemented"})
}

// parseID 解析路径参数 id，非正整数返回 false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}

// statusFor 把业务错误映射为 HTTP 状态码与对外消息.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrGoatNotFound):
		return http.StatusNotFound, "Goat not found"
	case errors.Is(err, service.ErrVideoNotFound):
		return http.StatusNotFound, "Video not found"
	case errors.Is(err, service.ErrMessageNotFound):
		return http.StatusNotFound, "Message not found"
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrUnsupportedMedia):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrAuthDisabled):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, ""
	}
}

// respondError 记录日志并写出 {"error": msg}，5xx 时使用 fallback 作为对外消息.
func respondError(c *gin.Context, err error, fallback string) {
	status, msg := statusFor(err)
	l := log.Logger()

	if status >= http.StatusInternalServerError {
		l.Error().Err(err).Str("path", c.Request.URL.Path).Msg(fallback)

		if msg == "" {
			msg = fallback
		}
	} else {
		l.Warn().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("request rejected")
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}
