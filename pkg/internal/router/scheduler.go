package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/handle"
	"github.com/yeisme/goatdesk/pkg/middleware"
)

// ops 注册运维路由，清理与调度要求 admin.
func (r routes) ops(g *gin.RouterGroup) {
	r.get(g, "/stats", handle.DashboardStats)
	g.POST("/cleanup-files", r.admin, handle.CleanupFiles)

	sched := g.Group("/scheduler", r.admin, middleware.RequireScheduler())
	{
		sched.GET("/jobs", handle.SchedulerJobs)
		sched.POST("/jobs/:name/run", handle.SchedulerRunJob)
	}
}
