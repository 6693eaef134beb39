// Package model 定义持久化模型.
package model

// All 返回需要迁移的全部模型.
func All() []any {
	return []any{
		&Goat{},
		&Video{},
		&ContactMessage{},
	}
}
