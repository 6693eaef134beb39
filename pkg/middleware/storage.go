package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/context"
	"github.com/yeisme/goatdesk/pkg/internal/storage"
)

// StorageMiddleware 将存储管理器注入 request context，service 层据此取得 DB、媒体存储与队列.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
