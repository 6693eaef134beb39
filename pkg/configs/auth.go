package configs

import (
	"time"

	"github.com/spf13/viper"
)

// AuthConfig 管理端认证。启用后写操作需要携带 Bearer JWT。
type AuthConfig struct {
	Enabled           bool          `mapstructure:"enabled"`             // 开启认证校验
	SkipPaths         []string      `mapstructure:"skip_paths"`          // 跳过认证的路径前缀（如 /metrics、/health）
	JWTSecret         string        `mapstructure:"jwt_secret"`          // HS256 签名密钥
	Issuer            string        `mapstructure:"issuer"`              // 签发者
	TokenTTL          time.Duration `mapstructure:"token_ttl"`           // 令牌有效期
	AdminUser         string        `mapstructure:"admin_user"`          // 管理员用户名
	AdminPasswordHash string        `mapstructure:"admin_password_hash"` // bcrypt 哈希，可用 goatdesk admin hash-password 生成
	ReadRequiresAuth  bool          `mapstructure:"read_requires_auth"`  // GET 接口是否也需要认证
	PublicRoutes      []string      `mapstructure:"public_routes"`       // 无需令牌的写路由，格式 "METHOD /路由模板"
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", AppName)
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("auth.admin_user", "admin")
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("auth.read_requires_auth", false)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/health",
		"/swagger",
		"/uploads",
		"/api/v1/auth/login",
	})
	v.SetDefault("auth.public_routes", []string{"POST /api/v1/videos/:id/like"})
}
