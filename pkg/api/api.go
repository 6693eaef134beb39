// Package api 组装对外 HTTP 接口.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/router"
)

// RegisterGroup 注册全部业务路由到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine, opts router.Options) *gin.Engine {
	router.Register(e, opts)

	return e
}
