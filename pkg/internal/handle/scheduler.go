package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/middleware"
)

// SchedulerJobs 返回所有调度器任务信息.
//
//	@Summary	定时任务列表
//	@Tags		运维
//	@Produce	json
//	@Success	200	{object}	map[string][]scheduler.JobInfo
//	@Failure	503	{object}	types.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/scheduler/jobs [get]
func SchedulerJobs(c *gin.Context) {
	sched := middleware.GetScheduler(c)

	c.JSON(http.StatusOK, gin.H{"jobs": sched.GetJobInfos()})
}

// SchedulerRunJob 立即执行一次指定任务.
//
//	@Summary	立即执行任务
//	@Tags		运维
//	@Produce	json
//	@Param		name	path		string	true	"任务名，如 media.orphan_sweep"
//	@Success	202		{object}	types.MessageResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/scheduler/jobs/{name}/run [post]
func SchedulerRunJob(c *gin.Context) {
	sched := middleware.GetScheduler(c)

	name := c.Param("name")
	if _, err := sched.GetJobInfoByName(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := sched.RunNow(name); err != nil {
		respondError(c, err, "Failed to run job")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "job triggered"})
}
