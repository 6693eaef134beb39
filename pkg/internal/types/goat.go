package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/yeisme/goatdesk/pkg/internal/locator"
	"github.com/yeisme/goatdesk/pkg/internal/model"
)

// FlexFloat 接受数字或数字字符串，例如 1200 与 "1200.50".
type FlexFloat float64

// UnmarshalJSON 实现 json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == "" {
		*f = 0
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := sonic.UnmarshalString(raw, &s); err != nil {
			return err
		}

		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}

		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price must be a number, got %q", s)
		}

		*f = FlexFloat(v)

		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("price must be a number, got %s", raw)
	}

	*f = FlexFloat(v)

	return nil
}

// GoatRequest 创建/更新商品记录请求.
// imageUrls 优先；为空时退回单个 imageUrl.
type GoatRequest struct {
	Name         string    `json:"name"         rule:"required"`
	Breed        string    `json:"breed"        rule:"required"`
	Age          string    `json:"age"          rule:"required"`
	Weight       string    `json:"weight"       rule:"required"`
	Price        FlexFloat `json:"price"        rule:"gt=0"`
	Gender       string    `json:"gender"       rule:"required"`
	Color        *string   `json:"color"`
	HealthStatus string    `json:"healthStatus"`
	IsAvailable  *bool     `json:"isAvailable"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	ImageURLs    []string  `json:"imageUrls"`
}

// Normalize 去除首尾空白.
func (r *GoatRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Breed = strings.TrimSpace(r.Breed)
	r.Age = strings.TrimSpace(r.Age)
	r.Weight = strings.TrimSpace(r.Weight)
	r.Gender = strings.TrimSpace(r.Gender)
	r.HealthStatus = strings.TrimSpace(r.HealthStatus)
	r.ImageURL = strings.TrimSpace(r.ImageURL)

	if r.Color != nil {
		if c := strings.TrimSpace(*r.Color); c != "" {
			r.Color = &c
		} else {
			r.Color = nil
		}
	}
}

// Locators 返回提交的非空定位符列表，顺序保持不变.
func (r *GoatRequest) Locators() []string {
	if locs := locator.Clean(r.ImageURLs); len(locs) > 0 {
		return locs
	}

	if r.ImageURL != "" {
		return []string{r.ImageURL}
	}

	return []string{}
}

// GoatResponse 商品记录响应，在模型字段之外附带解码后的图片列表与纯文本描述.
type GoatResponse struct {
	model.Goat
	Images          []string `json:"images"`
	DescriptionText string   `json:"descriptionText"`
}

// NewGoatResponse 由模型构造响应.
func NewGoatResponse(g *model.Goat) GoatResponse {
	return GoatResponse{
		Goat:            *g,
		Images:          locator.Clean(locator.Extract(g.ImageURL, g.Description, "")),
		DescriptionText: locator.Description(g.Description),
	}
}

// NewGoatListResponse 批量构造响应.
func NewGoatListResponse(goats []model.Goat) []GoatResponse {
	out := make([]GoatResponse, 0, len(goats))
	for i := range goats {
		out = append(out, NewGoatResponse(&goats[i]))
	}

	return out
}

// DeleteGoatResponse 删除结果.
// ReferencedFiles 为记录引用的文件数，DeletedFiles 为实际删除的文件数.
type DeleteGoatResponse struct {
	Message         string `json:"message"`
	DeletedFiles    int    `json:"deletedFiles"`
	ReferencedFiles int    `json:"referencedFiles"`
}
