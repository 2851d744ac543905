package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peergear/item-sharing-backend/internal/auth"
	"github.com/peergear/item-sharing-backend/internal/booking"
	bookingHttp "github.com/peergear/item-sharing-backend/internal/booking/http"
	"github.com/peergear/item-sharing-backend/internal/comment"
	"github.com/peergear/item-sharing-backend/internal/item"
	itemHttp "github.com/peergear/item-sharing-backend/internal/item/http"
	"github.com/peergear/item-sharing-backend/internal/itemrequest"
	requestHttp "github.com/peergear/item-sharing-backend/internal/itemrequest/http"
	"github.com/peergear/item-sharing-backend/internal/logging"
	"github.com/peergear/item-sharing-backend/internal/user"
	userHttp "github.com/peergear/item-sharing-backend/internal/user/http"
)

// Config holds everything the router needs to assemble middleware and
// register the module routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger

	UserService    user.Service
	ItemService    item.Service
	CommentService comment.Service
	BookingService booking.Service
	RequestService itemrequest.Service
}

// NewRouter initializes the HTTP router engine. It assembles the global
// middleware (recovery, request logging, CORS) and registers routes for
// every module. User CRUD is open; all other groups require the
// X-Sharer-User-Id identity header.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(cfg.Logger))

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", auth.SharerHeader}
	r.Use(cors.New(corsConfig))

	identity := auth.SharerRequired()

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService, cfg.CommentService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, identity)
		bookingHttp.RegisterRoutes(root, bookingHandler, identity)
		requestHttp.RegisterRoutes(root, requestHandler, identity)
	}

	return r
}
