// Package types 定义 HTTP 层的请求与响应结构.
package types

// ErrorResponse 统一错误响应.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse 仅包含提示信息的响应.
type MessageResponse struct {
	Message string `json:"message"`
}
