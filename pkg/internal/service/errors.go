package service

import "errors"

// 业务错误，handler 通过 errors.Is 映射为 HTTP 状态码.
var (
	ErrGoatNotFound       = errors.New("goat not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAuthDisabled       = errors.New("authentication is not configured")
	ErrInvalidToken       = errors.New("invalid token")
)
