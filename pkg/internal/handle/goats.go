package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/internal/types"
)

const invalidGoatID = "Invalid goat ID"

// ListGoats 列出全部商品，按创建时间倒序.
//
//	@Summary	商品列表
//	@Tags		商品
//	@Produce	json
//	@Success	200	{array}		types.GoatResponse
//	@Failure	500	{object}	types.ErrorResponse
//	@Router		/api/v1/products [get]
func ListGoats(c *gin.Context) {
	goats, err := service.NewGoatService(c.Request.Context()).List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch goats")
		return
	}

	c.JSON(http.StatusOK, types.NewGoatListResponse(goats))
}

// GetGoat 获取单个商品.
//
//	@Summary	商品详情
//	@Tags		商品
//	@Produce	json
//	@Param		id	path		int	true	"商品 ID"
//	@Success	200	{object}	types.GoatResponse
//	@Failure	400	{object}	types.ErrorResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/products/{id} [get]
func GetGoat(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidGoatID})
		return
	}

	g, err := service.NewGoatService(c.Request.Context()).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch goat")
		return
	}

	c.JSON(http.StatusOK, types.NewGoatResponse(g))
}

// CreateGoat 新建商品，imageUrls 多于一张时写入描述字段的图集结构.
//
//	@Summary	新建商品
//	@Tags		商品
//	@Accept		json
//	@Produce	json
//	@Param		req	body		types.GoatRequest	true	"商品信息"
//	@Success	201	{object}	types.GoatResponse
//	@Failure	400	{object}	types.ErrorResponse
//	@Failure	500	{object}	types.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/products [post]
func CreateGoat(c *gin.Context) {
	var req types.GoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	g, err := service.NewGoatService(c.Request.Context()).Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create goat")
		return
	}

	c.JSON(http.StatusCreated, types.NewGoatResponse(g))
}

// UpdateGoat 整体替换商品，不再引用的图片在提交后删除.
//
//	@Summary	更新商品
//	@Tags		商品
//	@Accept		json
//	@Produce	json
//	@Param		id	path		int					true	"商品 ID"
//	@Param		req	body		types.GoatRequest	true	"商品信息"
//	@Success	200	{object}	types.GoatResponse
//	@Failure	400	{object}	types.ErrorResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Failure	500	{object}	types.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/products/{id} [put]
func UpdateGoat(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidGoatID})
		return
	}

	var req types.GoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	g, err := service.NewGoatService(c.Request.Context()).Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update goat")
		return
	}

	c.JSON(http.StatusOK, types.NewGoatResponse(g))
}

// DeleteGoat 删除商品及其引用的图片.
//
//	@Summary	删除商品
//	@Tags		商品
//	@Produce	json
//	@Param		id	path		int	true	"商品 ID"
//	@Success	200	{object}	types.DeleteGoatResponse
//	@Failure	400	{object}	types.ErrorResponse
//	@Failure	404	{object}	types.DeleteGoatResponse
//	@Failure	500	{object}	types.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/products/{id} [delete]
func DeleteGoat(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidGoatID})
		return
	}

	res, err := service.NewGoatService(c.Request.Context()).Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrGoatNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goat not found", "deletedFiles": 0})
		return
	}

	if err != nil {
		respondError(c, err, "Failed to delete goat")
		return
	}

	c.JSON(http.StatusOK, types.DeleteGoatResponse{
		Message:         "Goat deleted successfully",
		DeletedFiles:    res.DeletedFiles,
		ReferencedFiles: res.ReferencedFiles,
	})
}
