package comment

import (
	"context"
	"strings"
	"time"

	"github.com/peergear/item-sharing-backend/internal/user"
)

// ItemChecker reports whether an item exists. Satisfied by the item service;
// declared here to keep this package below item in the dependency order.
type ItemChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service enforces the comment eligibility rule: only users with a
// completed (past-end) booking of an item may comment on it.
type Service interface {
	Add(ctx context.Context, itemID, authorID int64, text string) (*Comment, error)
	FindByItem(ctx context.Context, itemID int64) ([]*Comment, error)
}

type service struct {
	repo  Repository
	users user.Service
	items ItemChecker

	now func() time.Time
}

func NewService(repo Repository, users user.Service, items ItemChecker) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		now:   time.Now,
	}
}

func (s *service) Add(ctx context.Context, itemID, authorID int64, text string) (*Comment, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	ok, err := s.items.Exists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrItemNotFound
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	now := s.now()
	completed, err := s.repo.HasCompletedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrNoCompletedRental
	}

	cm := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}

	if err := s.repo.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *service) FindByItem(ctx context.Context, itemID int64) ([]*Comment, error) {
	return s.repo.FindByItem(ctx, itemID)
}
