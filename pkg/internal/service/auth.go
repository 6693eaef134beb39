package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/types"
)

// RoleAdmin 管理员角色名，与 middleware.Role 的字符串表示一致.
const RoleAdmin = "admin"

// Claims 令牌声明.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService 管理员登录与令牌签发.
type AuthService struct {
	cfg configs.AuthConfig
	now func() time.Time
}

// NewAuthService 创建认证服务.
func NewAuthService(cfg configs.AuthConfig) *AuthService {
	return &AuthService{cfg: cfg, now: time.Now}
}

// HashPassword 生成 bcrypt 哈希，用于写入 auth.admin_password_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is empty", ErrInvalidInput)
	}

	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(b), nil
}

// Login 校验管理员账号并签发令牌.
func (s *AuthService) Login(req *types.LoginRequest) (*types.LoginResponse, error) {
	if s.cfg.JWTSecret == "" || s.cfg.AdminPasswordHash == "" {
		return nil, ErrAuthDisabled
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUser)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password))

	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Issue(req.Username, RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{Token: token, TokenType: "Bearer", ExpiresAt: exp, Role: RoleAdmin}, nil
}

// Issue 签发 HS256 令牌.
func (s *AuthService) Issue(subject, role string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.TokenTTL)

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, exp, nil
}

// Parse 校验签名、签发者与有效期.
func (s *AuthService) Parse(token string) (*Claims, error) {
	if s.cfg.JWTSecret == "" {
		return nil, ErrAuthDisabled
	}

	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}

		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return claims, nil
}
