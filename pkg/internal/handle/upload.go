package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/service"
)

// multipartOverhead 表单边界与其他字段的额外字节.
const multipartOverhead = 1 << 20

// UploadImage 上传商品图片，表单字段 file.
//
//	@Summary		上传图片
//	@Description	允许 jpeg/png/webp，默认上限 5MB，返回 /uploads/goat-<ulid>.<ext>
//	@Tags			上传
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"图片文件"
//	@Success		200		{object}	types.ImageUploadResponse
//	@Failure		400		{object}	types.ErrorResponse
//	@Failure		413		{object}	types.ErrorResponse
//	@Failure		500		{object}	types.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/v1/upload [post]
func UploadImage(c *gin.Context) {
	res, ok := upload(c, service.KindImage, "file", configs.GetConfig().Media.Image)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, res.ImageResponse())
}

// UploadVideo 上传视频，表单字段 video.
//
//	@Summary		上传视频
//	@Description	允许 mp4/webm/ogg/quicktime/avi，默认上限 10MB，返回 /uploads/videos/video-<ulid>.<ext>
//	@Tags			上传
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			video	formData	file	true	"视频文件"
//	@Success		200		{object}	types.VideoUploadResponse
//	@Failure		400		{object}	types.ErrorResponse
//	@Failure		413		{object}	types.ErrorResponse
//	@Failure		500		{object}	types.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/v1/upload-video [post]
func UploadVideo(c *gin.Context) {
	res, ok := upload(c, service.KindVideo, "video", configs.GetConfig().Media.Video)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, res.VideoResponse())
}

func upload(c *gin.Context, kind service.MediaKind, field string, rule configs.UploadRule) (*service.UploadResult, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, rule.MaxSizeBytes()+multipartOverhead)

	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, service.ErrFileTooLarge, "")
			return nil, false
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})

		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, err, "Failed to read uploaded file")
		return nil, false
	}
	defer f.Close()

	res, err := service.NewUploadService(c.Request.Context()).Upload(c.Request.Context(), kind, service.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	})
	if err != nil {
		respondError(c, err, "Failed to upload file")
		return nil, false
	}

	return res, true
}
