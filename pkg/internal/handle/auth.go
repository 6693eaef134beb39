package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/internal/types"
	"github.com/yeisme/goatdesk/pkg/rule"
)

// Login 管理员登录，返回 HS256 令牌.
//
//	@Summary	管理员登录
//	@Tags		认证
//	@Accept		json
//	@Produce	json
//	@Param		req	body		types.LoginRequest	true	"账号密码"
//	@Success	200	{object}	types.LoginResponse
//	@Failure	400	{object}	types.ErrorResponse
//	@Failure	401	{object}	types.ErrorResponse
//	@Failure	503	{object}	types.ErrorResponse
//	@Router		/api/v1/auth/login [post]
func Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": rule.Message(err)})
		return
	}

	resp, err := service.NewAuthService(configs.GetConfig().Auth).Login(&req)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, resp)
}
