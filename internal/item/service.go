package item

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/peergear/item-sharing-backend/internal/comment"
	"github.com/peergear/item-sharing-backend/internal/user"
)

// CreateRequest holds the data needed to list a new item.
type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

// UpdateRequest holds a partial item update; nil fields are left unchanged.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// Service defines business logic related to the item catalog. Get and
// Exists are the facts the booking engine consumes; CountByOwner backs the
// owner-must-have-items rule on booking listings.
type Service interface {
	Create(ctx context.Context, req CreateRequest, ownerID int64) (*Item, error)
	Update(ctx context.Context, id int64, req UpdateRequest, actorID int64) (*Item, error)
	Delete(ctx context.Context, id, actorID int64) error
	Get(ctx context.Context, id int64) (*Item, error)
	GetDetail(ctx context.Context, id, callerID int64) (*Detail, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*Detail, error)
	Search(ctx context.Context, text string, from, size int) ([]*Item, error)
	Exists(ctx context.Context, id int64) (bool, error)
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
}

type service struct {
	repo     Repository
	users    user.Service
	comments comment.Service

	now func() time.Time
}

// NewService creates a new item Service.
func NewService(repo Repository, users user.Service, comments comment.Service) Service {
	return &service{
		repo:     repo,
		users:    users,
		comments: comments,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, ownerID int64) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}
	if req.RequestID != nil {
		ok, err := s.repo.RequestExists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRequestNotFound
		}
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest, actorID int64) (*Item, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actorID {
		return nil, ErrEditForbidden
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		it.Name = *req.Name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Delete(ctx context.Context, id, actorID int64) error {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return err
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if it.OwnerID != actorID {
		return ErrEditForbidden
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDetail returns the item with its comments. The nearest past and
// future bookings are attached only when the caller is the owner.
func (s *service) GetDetail(ctx context.Context, id, callerID int64) (*Detail, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Item: *it}

	detail.Comments, err = s.comments.FindByItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if it.OwnerID == callerID {
		if err := s.attachBookings(ctx, detail); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, size, from)
	if err != nil {
		return nil, err
	}

	details := make([]*Detail, 0, len(items))
	for _, it := range items {
		detail := &Detail{Item: *it}
		detail.Comments, err = s.comments.FindByItem(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		if err := s.attachBookings(ctx, detail); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// Search matches the text against item names and descriptions,
// case-insensitive. Blank text returns an empty list.
func (s *service) Search(ctx context.Context, text string, from, size int) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text, size, from)
}

func (s *service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	return s.repo.CountByOwner(ctx, ownerID)
}

func (s *service) attachBookings(ctx context.Context, detail *Detail) error {
	now := s.now()
	last, err := s.repo.LastBooking(ctx, detail.ID, now)
	if err != nil {
		return err
	}
	next, err := s.repo.NextBooking(ctx, detail.ID, now)
	if err != nil {
		return err
	}
	detail.LastBooking = last
	detail.NextBooking = next
	return nil
}
