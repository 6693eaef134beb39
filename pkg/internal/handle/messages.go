package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/service"
)

const invalidMessageID = "Invalid message ID"

// ListMessages 列出联系留言.
//
//	@Summary	留言列表
//	@Tags		留言
//	@Produce	json
//	@Success	200	{array}		model.ContactMessage
//	@Security	BearerAuth
//	@Router		/api/v1/messages [get]
func ListMessages(c *gin.Context) {
	msgs, err := service.NewMessageService(c.Request.Context()).List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// GetMessage 获取单条留言.
//
//	@Summary	留言详情
//	@Tags		留言
//	@Produce	json
//	@Param		id	path		int	true	"留言 ID"
//	@Success	200	{object}	model.ContactMessage
//	@Failure	404	{object}	types.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/messages/{id} [get]
func GetMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidMessageID})
		return
	}

	m, err := service.NewMessageService(c.Request.Context()).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch message")
		return
	}

	c.JSON(http.StatusOK, m)
}

// DeleteMessage 删除留言.
//
//	@Summary	删除留言
//	@Tags		留言
//	@Produce	json
//	@Param		id	path		int	true	"留言 ID"
//	@Success	200	{object}	types.MessageResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/messages/{id} [delete]
func DeleteMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidMessageID})
		return
	}

	if err := service.NewMessageService(c.Request.Context()).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete message")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
