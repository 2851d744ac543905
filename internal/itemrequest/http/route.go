package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the item request routes. The /all route must be
// declared before /:requestId so gin does not treat "all" as an id.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, identity gin.HandlerFunc) {
	group := g.Group("/requests")
	group.Use(identity)
	{
		group.POST("", h.Create)
		group.GET("", h.ListOwn)
		group.GET("/all", h.ListAll)
		group.GET("/:requestId", h.Get)
	}
}
