package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/peergear/item-sharing-backend/internal/api"
	"github.com/peergear/item-sharing-backend/internal/booking"
	"github.com/peergear/item-sharing-backend/internal/comment"
	"github.com/peergear/item-sharing-backend/internal/item"
	"github.com/peergear/item-sharing-backend/internal/itemrequest"
	"github.com/peergear/item-sharing-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger
	DBPool       *pgxpool.Pool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// itemExistence answers the comment module's existence checks straight from
// the item repository. The comment service cannot take the item service
// because the item service already takes the comment service.
type itemExistence struct {
	repo item.Repository
}

func (e itemExistence) Exists(ctx context.Context, id int64) (bool, error) {
	if _, err := e.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Comment Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := comment.NewPgxRepository(cfg.DBPool)
	commentService := comment.NewService(commentRepo, userService, itemExistence{repo: itemRepo})

	// Item Module
	itemService := item.NewService(itemRepo, userService, commentService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, userService, itemService)

	// Item Request Module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserService:    userService,
		ItemService:    itemService,
		CommentService: commentService,
		BookingService: bookingService,
		RequestService: requestService,
	})

	return &Container{Router: router}
}
