package router

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/handle"
)

// RegisterMediaRoute 注册媒体文件读取路由，不经过 gzip.
func RegisterMediaRoute(e *gin.Engine, prefix string) {
	if prefix == "" {
		prefix = "/uploads/"
	}

	p := "/" + strings.Trim(prefix, "/") + "/*path"
	e.GET(p, handle.ServeMedia)
	e.HEAD(p, handle.ServeMedia)
}

// uploads 注册上传路由.
func (r routes) uploads(g *gin.RouterGroup) {
	g.POST("/upload", r.editor, handle.UploadImage)
	g.POST("/upload-video", r.editor, handle.UploadVideo)
}
