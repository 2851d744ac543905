package itemrequest

import (
	"context"
	"strings"
	"time"

	"github.com/peergear/item-sharing-backend/internal/user"
)

type CreateRequest struct {
	Description string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, requesterID int64) (*Request, error)
	ListOwn(ctx context.Context, requesterID int64) ([]*Request, error)
	ListAll(ctx context.Context, requesterID int64, from, size int) ([]*Request, error)
	GetByID(ctx context.Context, id, callerID int64) (*Request, error)
}

type service struct {
	repo  Repository
	users user.Service
	now   func() time.Time
}

func NewService(repo Repository, users user.Service) Service {
	return &service{repo: repo, users: users, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateRequest, requesterID int64) (*Request, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	r := &Request{
		Description: req.Description,
		RequesterID: requesterID,
		Created:     s.now(),
		Items:       make([]Reply, 0),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID int64) ([]*Request, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListByRequester(ctx, requesterID)
}

// ListAll pages through requests opened by other users, newest first.
func (s *service) ListAll(ctx context.Context, requesterID int64, from, size int) ([]*Request, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListOthers(ctx, requesterID, size, from)
}

func (s *service) GetByID(ctx context.Context, id, callerID int64) (*Request, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
