package model

import (
	"time"

	"github.com/yeisme/goatdesk/pkg/internal/locator"
)

// Goat 商品记录（山羊）.
//
// Description 是双用途字段：单图或无图时为纯文本描述，多图时为
// {"description", "additionalImages"} 结构，见 locator 包.
// bool 与状态的默认值由 service 层填充，不依赖 gorm 的 default 标签（零值会被跳过）.
type Goat struct {
	ID           uint      `gorm:"primaryKey"              json:"id"`
	Name         string    `gorm:"size:255;not null"       json:"name"`
	Breed        string    `gorm:"size:255;not null;index" json:"breed"`
	Age          string    `gorm:"size:64;not null"        json:"age"`
	Weight       string    `gorm:"size:64;not null"        json:"weight"`
	Price        float64   `gorm:"not null"                json:"price"`
	Gender       string    `gorm:"size:32;not null"        json:"gender"`
	Color        *string   `gorm:"size:64"                 json:"color"`
	HealthStatus string    `gorm:"size:64;not null"        json:"healthStatus"`
	IsAvailable  bool      `gorm:"not null;index"          json:"isAvailable"`
	ImageURL     *string   `gorm:"size:1024"               json:"imageUrl"`
	Description  *string   `gorm:"type:text"               json:"description"`
	CreatedAt    time.Time `gorm:"index"                   json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Locators 返回该记录引用的全部图片定位符.
func (g *Goat) Locators(prefix string) []string {
	return locator.Extract(g.ImageURL, g.Description, prefix)
}
