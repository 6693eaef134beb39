package types

import "strings"

// VideoRequest 创建/更新视频请求.
type VideoRequest struct {
	Title        string  `json:"title"        rule:"required"`
	Description  *string `json:"description"`
	VideoURL     string  `json:"videoUrl"     rule:"required"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	IsActive     *bool   `json:"isActive"`
}

// Normalize 去除首尾空白，空的可选字段置为 nil.
func (r *VideoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.VideoURL = strings.TrimSpace(r.VideoURL)
	r.Description = trimOptional(r.Description)
	r.ThumbnailURL = trimOptional(r.ThumbnailURL)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}

	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}

	return &t
}

// DeleteVideoResponse 删除视频结果.
type DeleteVideoResponse struct {
	Message      string `json:"message"`
	DeletedFiles int    `json:"deletedFiles"`
}
