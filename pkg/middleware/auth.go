package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/service"
)

// TokenParser 校验 Bearer 令牌.
type TokenParser interface {
	Parse(token string) (*service.Claims, error)
}

// AuthMiddleware 基于 Bearer JWT 的统一认证。
//   - 未启用认证时所有请求按 admin 处理
//   - 跳过路径、公开写路由与未携带令牌的只读请求按 viewer 处理（只读请求受 read_requires_auth 约束）
//   - 携带的令牌无效一律 401.
func AuthMiddleware(conf configs.AuthConfig, parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled {
			setRole(c, RoleAdmin)
			c.Next()

			return
		}

		token := bearerToken(c.GetHeader("Authorization"))

		if token == "" {
			if isSkippedPath(c.Request.URL.Path, conf.SkipPaths) ||
				isPublicRoute(c.Request.Method, c.FullPath(), conf.PublicRoutes) ||
				(isReadMethod(c.Request.Method) && !conf.ReadRequiresAuth) {
				setRole(c, RoleViewer)
				c.Next()

				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

			return
		}

		claims, err := parser.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(subjectKey, claims.Subject)
		setRole(c, parseRole(claims.Role))
		c.Next()
	}
}

const subjectKey = "auth_subject"

// GetSubject 返回令牌主体，未认证时为空.
func GetSubject(c *gin.Context) string {
	return c.GetString(subjectKey)
}

func bearerToken(h string) string {
	h = strings.TrimSpace(h)

	const scheme = "bearer "
	if len(h) <= len(scheme) || !strings.EqualFold(h[:len(scheme)], scheme) {
		return ""
	}

	return strings.TrimSpace(h[len(scheme):])
}

func isReadMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
}

// isPublicRoute 按 "METHOD /路由模板" 匹配，模板取自 gin 的 FullPath.
func isPublicRoute(method, route string, routes []string) bool {
	if route == "" {
		return false
	}

	for _, r := range routes {
		m, p, ok := strings.Cut(strings.TrimSpace(r), " ")
		if ok && strings.EqualFold(m, method) && strings.TrimSpace(p) == route {
			return true
		}
	}

	return false
}

func isSkippedPath(path string, skips []string) bool {
	if path == "" || len(skips) == 0 {
		return false
	}

	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
