package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/internal/types"
)

const invalidVideoID = "Invalid video ID"

// ListVideos 列出视频.
//
//	@Summary	视频列表
//	@Tags		视频
//	@Produce	json
//	@Success	200	{array}		model.Video
//	@Failure	500	{object}	types.ErrorResponse
//	@Router		/api/v1/videos [get]
func ListVideos(c *gin.Context) {
	videos, err := service.NewVideoService(c.Request.Context()).List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch videos")
		return
	}

	c.JSON(http.StatusOK, videos)
}

// GetVideo 获取单个视频.
//
//	@Summary	视频详情
//	@Tags		视频
//	@Produce	json
//	@Param		id	path		int	true	"视频 ID"
//	@Success	200	{object}	model.Video
//	@Failure	400	{object}	types.ErrorResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/videos/{id} [get]
func GetVideo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidVideoID})
		return
	}

	v, err := service.NewVideoService(c.Request.Context()).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch video")
		return
	}

	c.JSON(http.StatusOK, v)
}

// CreateVideo 新建视频.
//
//	@Summary	新建视频
//	@Tags		视频
//	@Accept		json
//	@Produce	json
//	@Param		req	body		types.VideoRequest	true	"视频信息"
//	@Success	201	{object}	model.Video
//	@Failure	400	{object}	types.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/videos [post]
func CreateVideo(c *gin.Context) {
	var req types.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	v, err := service.NewVideoService(c.Request.Context()).Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create video")
		return
	}

	c.JSON(http.StatusCreated, v)
}

// UpdateVideo 更新视频，替换掉的视频与封面文件在提交后删除.
//
//	@Summary	更新视频
//	@Tags		视频
//	@Accept		json
//	@Produce	json
//	@Param		id	path		int					true	"视频 ID"
//	@Param		req	body		types.VideoRequest	true	"视频信息"
//	@Success	200	{object}	model.Video
//	@Failure	400	{object}	types.ErrorResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/videos/{id} [put]
func UpdateVideo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidVideoID})
		return
	}

	var req types.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	v, err := service.NewVideoService(c.Request.Context()).Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update video")
		return
	}

	c.JSON(http.StatusOK, v)
}

// DeleteVideo 删除视频及其文件.
//
//	@Summary	删除视频
//	@Tags		视频
//	@Produce	json
//	@Param		id	path		int	true	"视频 ID"
//	@Success	200	{object}	types.DeleteVideoResponse
//	@Failure	400	{object}	types.ErrorResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/videos/{id} [delete]
func DeleteVideo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidVideoID})
		return
	}

	deleted, err := service.NewVideoService(c.Request.Context()).Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to delete video")
		return
	}

	c.JSON(http.StatusOK, types.DeleteVideoResponse{Message: "Video deleted successfully", DeletedFiles: deleted})
}

// LikeVideo 点赞.
//
//	@Summary	视频点赞
//	@Tags		视频
//	@Produce	json
//	@Param		id	path		int	true	"视频 ID"
//	@Success	200	{object}	model.Video
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/videos/{id}/like [post]
func LikeVideo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidVideoID})
		return
	}

	v, err := service.NewVideoService(c.Request.Context()).Like(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to like video")
		return
	}

	c.JSON(http.StatusOK, v)
}
