package gateway

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peergear/item-sharing-backend/internal/auth"
	"github.com/peergear/item-sharing-backend/internal/logging"
)

// NewRouter builds the gateway engine. Each route runs its guards and then
// hands the request to the upstream client untouched. The route set mirrors
// the server exactly so unknown paths fail fast with 404 here.
func NewRouter(client *Client, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", auth.SharerHeader}
	r.Use(cors.New(corsConfig))

	identity := auth.SharerRequired()

	users := r.Group("/users")
	{
		users.POST("", bodyGuard(checkNewUser), client.Forward)
		users.GET("", client.Forward)
		users.GET("/:userId", client.Forward)
		users.PATCH("/:userId", bodyGuard(checkUserPatch), client.Forward)
		users.DELETE("/:userId", client.Forward)
	}

	items := r.Group("/items")
	items.Use(identity)
	{
		items.POST("", bodyGuard(checkNewItem), client.Forward)
		items.GET("", pageGuard, client.Forward)
		items.GET("/search", pageGuard, client.Forward)
		items.GET("/:itemId", client.Forward)
		items.PATCH("/:itemId", client.Forward)
		items.DELETE("/:itemId", client.Forward)
		items.POST("/:itemId/comment", bodyGuard(checkCommentText), client.Forward)
	}

	bookings := r.Group("/bookings")
	bookings.Use(identity)
	{
		bookings.POST("", bodyGuard(checkNewBooking), client.Forward)
		bookings.GET("", pageGuard, client.Forward)
		bookings.GET("/owner", pageGuard, client.Forward)
		bookings.GET("/:bookingId", client.Forward)
		bookings.PATCH("/:bookingId", client.Forward)
	}

	requests := r.Group("/requests")
	requests.Use(identity)
	{
		requests.POST("", bodyGuard(checkRequestDescription), client.Forward)
		requests.GET("", client.Forward)
		requests.GET("/all", pageGuard, client.Forward)
		requests.GET("/:requestId", client.Forward)
	}

	return r
}
