package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all user routes. User CRUD carries no identity
// header, so no middleware is applied here.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/users")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:userId", h.Get)
		group.PATCH("/:userId", h.Update)
		group.DELETE("/:userId", h.Delete)
	}
}
