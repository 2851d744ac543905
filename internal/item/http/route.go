package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers item routes, including the comment endpoint
// which lives under /items in the wire contract.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, identity gin.HandlerFunc) {
	group := g.Group("/items")
	group.Use(identity)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/search", h.Search)
		group.GET("/:itemId", h.Get)
		group.PATCH("/:itemId", h.Update)
		group.DELETE("/:itemId", h.Delete)
		group.POST("/:itemId/comment", h.AddComment)
	}
}
