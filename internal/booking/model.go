package booking

import (
	"net/http"
	"time"

	"github.com/peergear/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "booking not found")
	// ErrNoAccess masks authorization failures as not-found so that callers
	// cannot probe for the existence of other users' bookings.
	ErrNoAccess       = apperror.New(http.StatusNotFound, "insufficient rights")
	ErrOwnItem        = apperror.New(http.StatusNotFound, "cannot book an owned item")
	ErrUnavailable    = apperror.New(http.StatusBadRequest, "item is unavailable")
	ErrInvalidRange   = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrAlreadyDecided = apperror.New(http.StatusBadRequest, "booking already decided")
	ErrNoItems        = apperror.New(http.StatusNotFound, "user has no items")
	// ErrUnsupportedState carries the exact message clients match on for
	// unrecognized state filter values.
	ErrUnsupportedState = apperror.New(http.StatusBadRequest, "Unknown state: UNSUPPORTED_STATUS")
)

// Status is the decision state of a booking. A booking is created WAITING
// and moves to APPROVED or REJECTED exactly once, by the item owner.
// CANCELED exists in the stored enum but no operation produces it.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// Booking is a reservation of an item over a time window, read back with a
// denormalized snapshot of the item and the booker.
type Booking struct {
	ID     int64
	Start  time.Time
	End    time.Time
	Status Status

	ItemID        int64
	ItemName      string
	ItemOwnerID   int64
	ItemAvailable bool

	BookerID   int64
	BookerName string
}

// StateFilter classifies bookings for listing queries, either by status or
// by the booking window's relation to the current time.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter converts a query-string value to a StateFilter.
func ParseStateFilter(s string) (StateFilter, error) {
	switch f := StateFilter(s); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	default:
		return "", ErrUnsupportedState
	}
}

// Matches reports whether the booking falls into the filter's bucket at
// the given instant.
func (f StateFilter) Matches(b *Booking, now time.Time) bool {
	switch f {
	case FilterAll:
		return true
	case FilterCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case FilterPast:
		return b.End.Before(now)
	case FilterFuture:
		return b.Start.After(now)
	case FilterWaiting:
		return b.Status == StatusWaiting
	case FilterRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}
