package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/handle"
)

// videos 注册视频路由，点赞对访客开放.
func (r routes) videos(g *gin.RouterGroup) {
	videos := g.Group("/videos")
	{
		r.get(videos, "", handle.ListVideos)
		r.get(videos, "/:id", handle.GetVideo)

		videos.POST("", r.editor, handle.CreateVideo)
		videos.PUT("/:id", r.editor, handle.UpdateVideo)
		videos.DELETE("/:id", r.editor, handle.DeleteVideo)
		videos.POST("/:id/like", handle.LikeVideo)
	}
}

// messages 注册留言路由，留言含联系方式，读取也需要 editor.
func (r routes) messages(g *gin.RouterGroup) {
	messages := g.Group("/messages", r.editor)
	{
		messages.GET("", handle.ListMessages)
		messages.GET("/:id", handle.GetMessage)
		messages.DELETE("/:id", handle.DeleteMessage)
	}
}
