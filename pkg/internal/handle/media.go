package handle

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/goatdesk/pkg/context"
	"github.com/yeisme/goatdesk/pkg/internal/storage/media"
	"github.com/yeisme/goatdesk/pkg/log"
)

// ServeMedia 按定位符输出已上传的文件，本地后端支持 Range 请求.
//
//	@Summary	读取媒体文件
//	@Tags		上传
//	@Param		path	path	string	true	"命名空间内的相对路径"
//	@Success	200
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/uploads/{path} [get]
func ServeMedia(c *gin.Context) {
	store := ctxPkg.GetMediaStore(c.Request.Context())
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media store not initialized"})
		return
	}

	loc := strings.TrimSuffix(store.Prefix(), "/") + c.Param("path")

	rc, info, err := store.Open(c.Request.Context(), loc)
	if err != nil {
		if errors.Is(err, media.ErrNotExist) || errors.Is(err, media.ErrOutsideNamespace) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}

		l := log.Logger()
		l.Error().Err(err).Str("locator", loc).Msg("open media failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})

		return
	}
	defer rc.Close()

	if info.ContentType != "" {
		c.Header("Content-Type", info.ContentType)
	}

	c.Header("Cache-Control", "public, max-age=86400")

	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(c.Writer, c.Request, info.Name, info.ModTime, rs)
		return
	}

	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, rc, nil)
}
