package comment

import (
	"net/http"
	"time"

	"github.com/peergear/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrTextRequired = apperror.New(http.StatusBadRequest, "comment text is required")
	ErrItemNotFound = apperror.New(http.StatusNotFound, "item not found")
	// ErrNoCompletedRental rejects authors without a single past-end booking
	// of the item they are commenting on.
	ErrNoCompletedRental = apperror.New(http.StatusBadRequest, "user has not completed a rental of this item")
)

// Comment is feedback left on an item by a user who rented it.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}
