package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/goatdesk/pkg/context"
	"github.com/yeisme/goatdesk/pkg/scheduler"
)

// SchedulerMiddleware 将调度器注入请求 context，sched 为 nil 时不注入.
func SchedulerMiddleware(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sched != nil {
			c.Request = c.Request.WithContext(ctxPkg.WithScheduler(c.Request.Context(), sched))
		}

		c.Next()
	}
}

// RequireScheduler 调度器未运行时返回 503.
func RequireScheduler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetScheduler(c) == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not running"})
			return
		}

		c.Next()
	}
}

// GetScheduler 从请求 context 获取调度器.
func GetScheduler(c *gin.Context) *scheduler.Scheduler {
	return ctxPkg.GetScheduler(c.Request.Context())
}
