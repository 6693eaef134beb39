// Package locator 处理商品图片定位符：从记录中提取引用集合，以及把提交的图片列表编码回记录字段.
//
// 一条商品记录只有两个字段承载图片：ImageURL 存放主图，Description 在多图时存放
//
//	{"description": "...", "additionalImages": ["/uploads/b.jpg", "/uploads/c.jpg"]}
//
// 单图或无图时 Description 为普通文本。所有解析失败都视为普通文本。
package locator

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/samber/lo"
)

// Gallery Description 字段的多图结构.
type Gallery struct {
	Description      string   `json:"description"`
	AdditionalImages []string `json:"additionalImages"`
}

// galleryProbe 用于宽松解析，additionalImages 中的非字符串元素会被忽略.
type galleryProbe struct {
	Description      any `json:"description"`
	AdditionalImages any `json:"additionalImages"`
}

// Extract 返回记录当前引用的全部定位符：主图在前，其余按存储顺序，不去重.
// notes 解析失败时不贡献任何定位符，永不返回错误.
func Extract(primary, notes *string, prefix string) []string {
	out := make([]string, 0, 1)

	if primary != nil && strings.HasPrefix(*primary, prefix) {
		out = append(out, *primary)
	}

	if notes == nil {
		return out
	}

	probe, ok := parse(*notes)
	if !ok {
		return out
	}

	items, ok := probe.AdditionalImages.([]any)
	if !ok {
		return out
	}

	for _, item := range items {
		if s, isStr := item.(string); isStr && strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}

	return out
}

// Encode 按编码规则生成主图与 Description 字段.
//
//   - 多于一个：第一个为主图，其余与描述一起序列化进 notes
//   - 恰好一个：主图 + 纯文本描述
//   - 零个：主图为空，notes 为纯文本描述
//
// locators 需先经过 Clean.
func Encode(locators []string, description string) (primary, notes *string, err error) {
	switch {
	case len(locators) > 1:
		raw, err := sonic.MarshalString(Gallery{
			Description:      description,
			AdditionalImages: append([]string(nil), locators[1:]...),
		})
		if err != nil {
			return nil, nil, err
		}

		return lo.ToPtr(locators[0]), &raw, nil
	case len(locators) == 1:
		return lo.ToPtr(locators[0]), textPtr(description), nil
	default:
		return nil, textPtr(description), nil
	}
}

// Clean 去掉空白定位符并裁剪首尾空格，保持顺序.
func Clean(locators []string) []string {
	out := make([]string, 0, len(locators))

	for _, l := range locators {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}

	return out
}

// Description 返回 notes 中的纯文本描述；多图结构取其 description 字段.
func Description(notes *string) string {
	if notes == nil {
		return ""
	}

	probe, ok := parse(*notes)
	if !ok || probe.AdditionalImages == nil {
		return *notes
	}

	if s, isStr := probe.Description.(string); isStr {
		return s
	}

	return ""
}

// IsGallery 判断 notes 是否为多图结构.
func IsGallery(notes *string) bool {
	if notes == nil {
		return false
	}

	probe, ok := parse(*notes)

	return ok && probe.AdditionalImages != nil
}

// Diff 返回 before 中不在 after 里的定位符（before − after），保持顺序并去重.
func Diff(before, after []string) []string {
	return lo.Uniq(lo.Without(before, after...))
}

// Union 合并多组定位符为集合.
func Union(groups ...[]string) map[string]struct{} {
	set := make(map[string]struct{})

	for _, g := range groups {
		for _, l := range g {
			set[l] = struct{}{}
		}
	}

	return set
}

func parse(notes string) (galleryProbe, bool) {
	var probe galleryProbe

	trimmed := strings.TrimSpace(notes)
	if !strings.HasPrefix(trimmed, "{") {
		return probe, false
	}

	if err := sonic.UnmarshalString(trimmed, &probe); err != nil {
		return probe, false
	}

	return probe, true
}

func textPtr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
