package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peergear/item-sharing-backend/internal/item"
	"github.com/peergear/item-sharing-backend/internal/user"
)

type stubUsers struct {
	user.Service
	users map[int64]*user.User
}

func (s stubUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type stubItems struct {
	item.Service
	items map[int64]*item.Item
	owned map[int64]int
}

func (s stubItems) Get(_ context.Context, id int64) (*item.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

func (s stubItems) CountByOwner(_ context.Context, ownerID int64) (int, error) {
	return s.owned[ownerID], nil
}

type stubRepo struct {
	bookings   map[int64]*Booking
	listed     []*Booking
	nextID     int64
	finalizeOK bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{bookings: map[int64]*Booking{}, nextID: 1, finalizeOK: true}
}

func (r *stubRepo) Create(_ context.Context, b *Booking) error {
	b.ID = r.nextID
	r.nextID++
	r.bookings[b.ID] = b
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id int64) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *stubRepo) ListByBooker(_ context.Context, _ int64, _, _ int) ([]*Booking, error) {
	return r.listed, nil
}

func (r *stubRepo) ListByOwner(_ context.Context, _ int64, _, _ int) ([]*Booking, error) {
	return r.listed, nil
}

func (r *stubRepo) Finalize(_ context.Context, id int64, status Status) (bool, error) {
	if !r.finalizeOK {
		return false, nil
	}
	b, ok := r.bookings[id]
	if !ok || b.Status != StatusWaiting {
		return false, nil
	}
	b.Status = status
	return true, nil
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, users user.Service, items item.Service) Service {
	s := NewService(repo, users, items).(*service)
	s.now = func() time.Time { return testNow }
	return s
}

func fixtures() (stubUsers, stubItems) {
	users := stubUsers{users: map[int64]*user.User{
		1: {ID: 1, Name: "owner", Email: "owner@example.com"},
		2: {ID: 2, Name: "booker", Email: "booker@example.com"},
		3: {ID: 3, Name: "stranger", Email: "stranger@example.com"},
	}}
	items := stubItems{
		items: map[int64]*item.Item{
			10: {ID: 10, Name: "drill", Description: "cordless", Available: true, OwnerID: 1},
			11: {ID: 11, Name: "ladder", Description: "folding", Available: false, OwnerID: 1},
		},
		owned: map[int64]int{1: 2},
	}
	return users, items
}

func TestCreateBooking(t *testing.T) {
	users, items := fixtures()
	start := testNow.Add(24 * time.Hour)
	end := testNow.Add(48 * time.Hour)

	t.Run("creates a waiting booking with the item snapshot", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(repo, users, items)

		b, err := svc.Create(context.Background(), CreateRequest{ItemID: 10, Start: start, End: end}, 2)
		require.NoError(t, err)
		assert.Equal(t, StatusWaiting, b.Status)
		assert.Equal(t, int64(10), b.ItemID)
		assert.Equal(t, "drill", b.ItemName)
		assert.Equal(t, int64(1), b.ItemOwnerID)
		assert.Equal(t, int64(2), b.BookerID)
		assert.Equal(t, "booker", b.BookerName)
		assert.NotZero(t, b.ID)
	})

	t.Run("unknown booker", func(t *testing.T) {
		svc := newTestService(newStubRepo(), users, items)
		_, err := svc.Create(context.Background(), CreateRequest{ItemID: 10, Start: start, End: end}, 99)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc := newTestService(newStubRepo(), users, items)
		_, err := svc.Create(context.Background(), CreateRequest{ItemID: 99, Start: start, End: end}, 2)
		assert.ErrorIs(t, err, item.ErrNotFound)
	})

	t.Run("unavailable item", func(t *testing.T) {
		svc := newTestService(newStubRepo(), users, items)
		_, err := svc.Create(context.Background(), CreateRequest{ItemID: 11, Start: start, End: end}, 2)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("booking an owned item reads as not found", func(t *testing.T) {
		svc := newTestService(newStubRepo(), users, items)
		_, err := svc.Create(context.Background(), CreateRequest{ItemID: 10, Start: start, End: end}, 1)
		assert.ErrorIs(t, err, ErrOwnItem)
	})

	t.Run("start must be strictly before end", func(t *testing.T) {
		svc := newTestService(newStubRepo(), users, items)

		_, err := svc.Create(context.Background(), CreateRequest{ItemID: 10, Start: end, End: start}, 2)
		assert.ErrorIs(t, err, ErrInvalidRange)

		_, err = svc.Create(context.Background(), CreateRequest{ItemID: 10, Start: start, End: start}, 2)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("availability is checked before ownership", func(t *testing.T) {
		// The owner booking their own unavailable item must hit the
		// availability error first.
		svc := newTestService(newStubRepo(), users, items)
		_, err := svc.Create(context.Background(), CreateRequest{ItemID: 11, Start: start, End: end}, 1)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestConfirm(t *testing.T) {
	users, items := fixtures()

	seed := func(repo *stubRepo, status Status) *Booking {
		b := &Booking{
			Start:       testNow.Add(24 * time.Hour),
			End:         testNow.Add(48 * time.Hour),
			Status:      status,
			ItemID:      10,
			ItemName:    "drill",
			ItemOwnerID: 1,
			BookerID:    2,
			BookerName:  "booker",
		}
		_ = repo.Create(context.Background(), b)
		return b
	}

	t.Run("owner approves", func(t *testing.T) {
		repo := newStubRepo()
		b := seed(repo, StatusWaiting)
		svc := newTestService(repo, users, items)

		decided, err := svc.Confirm(context.Background(), b.ID, true, 1)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, decided.Status)
	})

	t.Run("owner rejects", func(t *testing.T) {
		repo := newStubRepo()
		b := seed(repo, StatusWaiting)
		svc := newTestService(repo, users, items)

		decided, err := svc.Confirm(context.Background(), b.ID, false, 1)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, decided.Status)
	})

	t.Run("non-owner reads as not found", func(t *testing.T) {
		repo := newStubRepo()
		b := seed(repo, StatusWaiting)
		svc := newTestService(repo, users, items)

		_, err := svc.Confirm(context.Background(), b.ID, true, 2)
		assert.ErrorIs(t, err, ErrNoAccess)
	})

	t.Run("repeating the same decision fails", func(t *testing.T) {
		repo := newStubRepo()
		b := seed(repo, StatusApproved)
		svc := newTestService(repo, users, items)

		_, err := svc.Confirm(context.Background(), b.ID, true, 1)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("reversing a decision fails", func(t *testing.T) {
		repo := newStubRepo()
		b := seed(repo, StatusApproved)
		svc := newTestService(repo, users, items)

		_, err := svc.Confirm(context.Background(), b.ID, false, 1)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("losing the race fails", func(t *testing.T) {
		repo := newStubRepo()
		b := seed(repo, StatusWaiting)
		repo.finalizeOK = false
		svc := newTestService(repo, users, items)

		_, err := svc.Confirm(context.Background(), b.ID, true, 1)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := newTestService(newStubRepo(), users, items)
		_, err := svc.Confirm(context.Background(), 404, true, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetByIDVisibility(t *testing.T) {
	users, items := fixtures()
	repo := newStubRepo()
	b := &Booking{
		Start:       testNow.Add(24 * time.Hour),
		End:         testNow.Add(48 * time.Hour),
		Status:      StatusWaiting,
		ItemID:      10,
		ItemOwnerID: 1,
		BookerID:    2,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	svc := newTestService(repo, users, items)

	_, err := svc.GetByID(context.Background(), b.ID, 2)
	assert.NoError(t, err, "booker can see the booking")

	_, err = svc.GetByID(context.Background(), b.ID, 1)
	assert.NoError(t, err, "item owner can see the booking")

	_, err = svc.GetByID(context.Background(), b.ID, 3)
	assert.ErrorIs(t, err, ErrNoAccess, "anyone else gets not found")
}

func TestListByBooker(t *testing.T) {
	users, items := fixtures()

	t.Run("unknown state filter", func(t *testing.T) {
		svc := newTestService(newStubRepo(), users, items)
		_, err := svc.ListByBooker(context.Background(), "SOMEDAY", 0, 10, 2)
		assert.ErrorIs(t, err, ErrUnsupportedState)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestService(newStubRepo(), users, items)
		_, err := svc.ListByBooker(context.Background(), "ALL", 0, 10, 99)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("filter runs on the fetched page", func(t *testing.T) {
		// Two of the three page rows are in the past, so a FUTURE query
		// comes back short even if later pages held future bookings.
		repo := newStubRepo()
		repo.listed = []*Booking{
			{ID: 1, Start: testNow.Add(-48 * time.Hour), End: testNow.Add(-24 * time.Hour), Status: StatusApproved, BookerID: 2},
			{ID: 2, Start: testNow.Add(-2 * time.Hour), End: testNow.Add(2 * time.Hour), Status: StatusApproved, BookerID: 2},
			{ID: 3, Start: testNow.Add(24 * time.Hour), End: testNow.Add(48 * time.Hour), Status: StatusWaiting, BookerID: 2},
		}
		svc := newTestService(repo, users, items)

		future, err := svc.ListByBooker(context.Background(), "FUTURE", 0, 3, 2)
		require.NoError(t, err)
		require.Len(t, future, 1)
		assert.Equal(t, int64(3), future[0].ID)

		current, err := svc.ListByBooker(context.Background(), "CURRENT", 0, 3, 2)
		require.NoError(t, err)
		require.Len(t, current, 1)
		assert.Equal(t, int64(2), current[0].ID)

		all, err := svc.ListByBooker(context.Background(), "ALL", 0, 3, 2)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestListByOwner(t *testing.T) {
	users, items := fixtures()

	t.Run("owner with no items reads as not found", func(t *testing.T) {
		svc := newTestService(newStubRepo(), users, items)
		_, err := svc.ListByOwner(context.Background(), "ALL", 0, 10, 2)
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("status filter", func(t *testing.T) {
		repo := newStubRepo()
		repo.listed = []*Booking{
			{ID: 1, Status: StatusWaiting, Start: testNow.Add(24 * time.Hour), End: testNow.Add(48 * time.Hour)},
			{ID: 2, Status: StatusRejected, Start: testNow.Add(24 * time.Hour), End: testNow.Add(48 * time.Hour)},
		}
		svc := newTestService(repo, users, items)

		waiting, err := svc.ListByOwner(context.Background(), "WAITING", 0, 10, 1)
		require.NoError(t, err)
		require.Len(t, waiting, 1)
		assert.Equal(t, int64(1), waiting[0].ID)

		rejected, err := svc.ListByOwner(context.Background(), "REJECTED", 0, 10, 1)
		require.NoError(t, err)
		require.Len(t, rejected, 1)
		assert.Equal(t, int64(2), rejected[0].ID)
	})
}
