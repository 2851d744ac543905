package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the booking lifecycle routes. The /owner route
// must be declared before /:bookingId so gin does not treat "owner" as an id.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, identity gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(identity)
	{
		group.POST("", h.Create)
		group.GET("", h.ListByBooker)
		group.GET("/owner", h.ListByOwner)
		group.GET("/:bookingId", h.Get)
		group.PATCH("/:bookingId", h.Confirm)
	}
}
