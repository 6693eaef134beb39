package model

import (
	"strings"
	"time"
)

// Video 短视频.
type Video struct {
	ID           uint      `gorm:"primaryKey"         json:"id"`
	Title        string    `gorm:"size:255;not null"  json:"title"`
	Description  *string   `gorm:"type:text"          json:"description"`
	VideoURL     string    `gorm:"size:1024;not null" json:"videoUrl"`
	ThumbnailURL *string   `gorm:"size:1024"          json:"thumbnailUrl"`
	IsActive     bool      `gorm:"not null;index"     json:"isActive"`
	Likes        int       `gorm:"not null"           json:"likes"`
	CreatedAt    time.Time `gorm:"index"              json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Locators 返回视频及缩略图中位于命名空间内的定位符.
func (v *Video) Locators(prefix string) []string {
	out := make([]string, 0, 2)
	if strings.HasPrefix(v.VideoURL, prefix) {
		out = append(out, v.VideoURL)
	}

	if v.ThumbnailURL != nil && strings.HasPrefix(*v.ThumbnailURL, prefix) {
		out = append(out, *v.ThumbnailURL)
	}

	return out
}
