package item

import (
	"net/http"

	"github.com/peergear/item-sharing-backend/internal/comment"
	"github.com/peergear/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item not found")
	ErrRequestNotFound     = apperror.New(http.StatusNotFound, "item request not found")
	ErrEditForbidden       = apperror.New(http.StatusBadRequest, "insufficient rights to edit item")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name is required")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
	ErrAvailableRequired   = apperror.New(http.StatusBadRequest, "available flag is required")
	ErrItemInUse           = apperror.New(http.StatusConflict, "item still has bookings or comments")
)

// Item is a thing a user offers for rent. RequestID links the item to the
// item request it was created in answer to, if any.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// BookingRef is the minimal booking reference shown on owner item views.
type BookingRef struct {
	ID       int64
	BookerID int64
}

// Detail is an item enriched for read endpoints: comments for everyone,
// the nearest past and future bookings for the owner only.
type Detail struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []*comment.Comment
}
