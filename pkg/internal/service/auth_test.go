package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/internal/types"
)

func authConfig(t *testing.T) configs.AuthConfig {
	t.Helper()

	hash, err := service.HashPassword("s3cret")
	require.NoError(t, err)

	return configs.AuthConfig{
		Enabled:           true,
		JWTSecret:         "test-secret",
		Issuer:            "goatdesk",
		TokenTTL:          time.Hour,
		AdminUser:         "admin",
		AdminPasswordHash: hash,
	}
}

func TestAuthLoginAndParse(t *testing.T) {
	svc := service.NewAuthService(authConfig(t))

	resp, err := svc.Login(&types.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, service.RoleAdmin, resp.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := svc.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, service.RoleAdmin, claims.Role)
}

func TestAuthLogin_BadCredentials(t *testing.T) {
	svc := service.NewAuthService(authConfig(t))

	_, err := svc.Login(&types.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(&types.LoginRequest{Username: "root", Password: "s3cret"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthLogin_NotConfigured(t *testing.T) {
	svc := service.NewAuthService(configs.AuthConfig{Enabled: true})

	_, err := svc.Login(&types.LoginRequest{Username: "admin", Password: "x"})
	assert.ErrorIs(t, err, service.ErrAuthDisabled)

	_, err = svc.Parse("anything")
	assert.ErrorIs(t, err, service.ErrAuthDisabled)
}

func TestAuthParse_Rejects(t *testing.T) {
	cfg := authConfig(t)
	svc := service.NewAuthService(cfg)

	token, _, err := svc.Issue("admin", service.RoleAdmin)
	require.NoError(t, err)

	// 篡改签名
	_, err = svc.Parse(token[:len(token)-2] + "xx")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	// 其他密钥
	other := cfg
	other.JWTSecret = "another-secret"
	_, err = service.NewAuthService(other).Parse(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	// 签发者不符
	other = cfg
	other.Issuer = "someone-else"
	_, err = service.NewAuthService(other).Parse(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	// 已过期
	expired := cfg
	expired.TokenTTL = -time.Minute
	stale, _, err := service.NewAuthService(expired).Issue("admin", service.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Parse(stale)
	require.ErrorIs(t, err, service.ErrInvalidToken)
	assert.True(t, strings.Contains(err.Error(), "expired"), err.Error())

	_, err = svc.Parse("not-a-jwt")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestHashPassword(t *testing.T) {
	_, err := service.HashPassword("")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	a, err := service.HashPassword("pw")
	require.NoError(t, err)

	b, err := service.HashPassword("pw")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "$2a$"), a)
}
