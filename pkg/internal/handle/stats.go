package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/service"
)

// DashboardStats 仪表盘统计.
//
//	@Summary	仪表盘统计
//	@Tags		运维
//	@Produce	json
//	@Success	200	{object}	types.DashboardStats
//	@Failure	500	{object}	types.ErrorResponse
//	@Router		/api/v1/stats [get]
func DashboardStats(c *gin.Context) {
	stats, err := service.NewStatsService(c.Request.Context()).Summary(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
