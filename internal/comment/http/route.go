package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts comments under the item they belong to. The path
// parameter is named id to share the /items/:id node with the item routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/items")
	group.Use(authMiddleware)
	{
		group.POST("/:id/comment", h.Create)
	}
}
