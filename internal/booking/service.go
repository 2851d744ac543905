package booking

import (
	"context"
	"time"

	"github.com/peergear/item-sharing-backend/internal/item"
	"github.com/peergear/item-sharing-backend/internal/user"
)

// CreateRequest holds the data needed to request a booking.
type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Service is the booking lifecycle engine: creation checks, the
// WAITING -> APPROVED/REJECTED transition, visibility rules and the
// state-filtered listing queries.
type Service interface {
	Create(ctx context.Context, req CreateRequest, bookerID int64) (*Booking, error)
	Confirm(ctx context.Context, bookingID int64, approved bool, actorID int64) (*Booking, error)
	GetByID(ctx context.Context, bookingID, callerID int64) (*Booking, error)
	ListByBooker(ctx context.Context, state string, from, size int, bookerID int64) ([]*Booking, error)
	ListByOwner(ctx context.Context, state string, from, size int, ownerID int64) ([]*Booking, error)
}

type service struct {
	repo  Repository
	users user.Service
	items item.Service

	now func() time.Time
}

// NewService creates the booking lifecycle engine.
func NewService(repo Repository, users user.Service, items item.Service) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		now:   time.Now,
	}
}

// Create validates a booking request and persists it as WAITING. The
// checks run in a fixed order, each failing with its own error: booker
// exists, item exists, item available, booker is not the owner, start
// strictly before end.
func (s *service) Create(ctx context.Context, req CreateRequest, bookerID int64) (*Booking, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, ErrUnavailable
	}
	// Masked as not-found, like every authorization failure here.
	if it.OwnerID == bookerID {
		return nil, ErrOwnItem
	}
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidRange
	}

	b := &Booking{
		Start:         req.Start,
		End:           req.End,
		Status:        StatusWaiting,
		ItemID:        it.ID,
		ItemName:      it.Name,
		ItemOwnerID:   it.OwnerID,
		ItemAvailable: it.Available,
		BookerID:      booker.ID,
		BookerName:    booker.Name,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Confirm applies the item owner's decision. A booking is decided at most
// once: any call on a non-WAITING booking fails, including a reversal of
// an earlier decision. The terminal write is a conditional single-row
// update, so of two concurrent confirmations exactly one wins.
func (s *service) Confirm(ctx context.Context, bookingID int64, approved bool, actorID int64) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ItemOwnerID != actorID {
		return nil, ErrNoAccess
	}

	if (b.Status == StatusApproved && approved) || (b.Status == StatusRejected && !approved) {
		return nil, ErrAlreadyDecided
	}
	if b.Status != StatusWaiting {
		return nil, ErrAlreadyDecided
	}

	status := StatusRejected
	if approved {
		status = StatusApproved
	}

	ok, err := s.repo.Finalize(ctx, b.ID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent confirmation finalized the booking first.
		return nil, ErrAlreadyDecided
	}

	b.Status = status
	return b, nil
}

// GetByID returns the booking only to its booker or the item owner;
// anyone else gets not-found.
func (s *service) GetByID(ctx context.Context, bookingID, callerID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != callerID && b.ItemOwnerID != callerID {
		return nil, ErrNoAccess
	}
	return b, nil
}

// ListByBooker returns a page of the user's own bookings, newest start
// first. The state filter is applied to the already-fetched page, so a
// page may come back short (or empty) even when matching rows exist
// beyond the page boundary.
func (s *service) ListByBooker(ctx context.Context, state string, from, size int, bookerID int64) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}
	filter, err := ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByBooker(ctx, bookerID, size, from)
	if err != nil {
		return nil, err
	}
	return s.applyFilter(bookings, filter), nil
}

// ListByOwner returns a page of bookings across every item the user owns.
// A user who owns no items gets not-found. Filter semantics match
// ListByBooker, page first, filter second.
func (s *service) ListByOwner(ctx context.Context, state string, from, size int, ownerID int64) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	owned, err := s.items.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owned == 0 {
		return nil, ErrNoItems
	}

	filter, err := ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByOwner(ctx, ownerID, size, from)
	if err != nil {
		return nil, err
	}
	return s.applyFilter(bookings, filter), nil
}

func (s *service) applyFilter(bookings []*Booking, filter StateFilter) []*Booking {
	if filter == FilterAll {
		return bookings
	}

	now := s.now()
	filtered := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if filter.Matches(b, now) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
