package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/goatdesk/pkg/internal/handle"
)

// goats 注册商品路由，写操作需要 editor.
func (r routes) goats(g *gin.RouterGroup) {
	products := g.Group("/products")
	{
		r.get(products, "", handle.ListGoats)
		r.get(products, "/:id", handle.GetGoat)

		products.POST("", r.editor, handle.CreateGoat)
		products.PUT("/:id", r.editor, handle.UpdateGoat)
		products.DELETE("/:id", r.editor, handle.DeleteGoat)
	}
}
