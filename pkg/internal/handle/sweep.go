package handle

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/internal/types"
)

// CleanupFiles 清理未被任何商品引用的图片，body 可选 {"dryRun": true}.
//
//	@Summary		清理孤儿图片
//	@Description	删除上传目录中匹配 goat-*.{jpg,jpeg,png,webp} 且未被任何商品引用的文件
//	@Tags			运维
//	@Accept			json
//	@Produce		json
//	@Param			req	body		types.SweepRequest	false	"清理选项"
//	@Success		200	{object}	types.SweepResult
//	@Failure		500	{object}	types.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/v1/cleanup-files [post]
func CleanupFiles(c *gin.Context) {
	var req types.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	res, err := service.NewSweepService(c.Request.Context()).Run(c.Request.Context(), service.SweepOptions{
		DryRun:  req.DryRun,
		Trigger: "http",
	})
	if err != nil {
		respondError(c, err, "Failed to cleanup files")
		return
	}

	c.JSON(http.StatusOK, res)
}
