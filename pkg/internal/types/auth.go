package types

import "time"

// LoginRequest 管理员登录请求.
type LoginRequest struct {
	Username string `json:"username" rule:"required"`
	Password string `json:"password" rule:"required"`
}

// LoginResponse 登录成功返回的令牌.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      string    `json:"role"`
}
