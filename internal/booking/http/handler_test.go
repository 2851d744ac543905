package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peergear/item-sharing-backend/internal/auth"
	"github.com/peergear/item-sharing-backend/internal/booking"
)

type stubService struct {
	created   *booking.Booking
	createErr error

	confirmed    *booking.Booking
	confirmErr   error
	lastApproved bool

	listed    []*booking.Booking
	lastState string
	lastFrom  int
	lastSize  int
	listErr   error
}

func (s *stubService) Create(_ context.Context, _ booking.CreateRequest, _ int64) (*booking.Booking, error) {
	return s.created, s.createErr
}

func (s *stubService) Confirm(_ context.Context, _ int64, approved bool, _ int64) (*booking.Booking, error) {
	s.lastApproved = approved
	return s.confirmed, s.confirmErr
}

func (s *stubService) GetByID(_ context.Context, _, _ int64) (*booking.Booking, error) {
	return s.created, s.createErr
}

func (s *stubService) ListByBooker(_ context.Context, state string, from, size int, _ int64) ([]*booking.Booking, error) {
	s.lastState, s.lastFrom, s.lastSize = state, from, size
	return s.listed, s.listErr
}

func (s *stubService) ListByOwner(_ context.Context, state string, from, size int, _ int64) ([]*booking.Booking, error) {
	s.lastState, s.lastFrom, s.lastSize = state, from, size
	return s.listed, s.listErr
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group(""), NewHandler(svc), auth.SharerRequired())
	return r
}

func doRequest(r *gin.Engine, method, target, body string, sharer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sharer != "" {
		req.Header.Set(auth.SharerHeader, sharer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var sample = &booking.Booking{
	ID:         7,
	Start:      time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	End:        time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
	Status:     booking.StatusWaiting,
	ItemID:     10,
	ItemName:   "drill",
	BookerID:   2,
	BookerName: "booker",
}

func TestCreateBookingEndpoint(t *testing.T) {
	t.Run("missing identity header", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := doRequest(r, http.MethodPost, "/bookings", `{"itemId":10,"start":"2026-04-01T10:00:00Z","end":"2026-04-02T10:00:00Z"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := doRequest(r, http.MethodPost, "/bookings", `{"start":"2026-04-01T10:00:00Z"}`, "2")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("created booking is echoed back", func(t *testing.T) {
		r := newTestRouter(&stubService{created: sample})
		w := doRequest(r, http.MethodPost, "/bookings", `{"itemId":10,"start":"2026-04-01T10:00:00Z","end":"2026-04-02T10:00:00Z"}`, "2")
		require.Equal(t, http.StatusOK, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "WAITING", resp.Status)
		assert.Equal(t, "drill", resp.Item.Name)
		assert.Equal(t, int64(2), resp.Booker.ID)
	})

	t.Run("service errors map to their status", func(t *testing.T) {
		r := newTestRouter(&stubService{createErr: booking.ErrUnavailable})
		w := doRequest(r, http.MethodPost, "/bookings", `{"itemId":10,"start":"2026-04-01T10:00:00Z","end":"2026-04-02T10:00:00Z"}`, "2")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		r = newTestRouter(&stubService{createErr: booking.ErrOwnItem})
		w = doRequest(r, http.MethodPost, "/bookings", `{"itemId":10,"start":"2026-04-01T10:00:00Z","end":"2026-04-02T10:00:00Z"}`, "2")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestConfirmBookingEndpoint(t *testing.T) {
	t.Run("approved query is required", func(t *testing.T) {
		r := newTestRouter(&stubService{confirmed: sample})
		w := doRequest(r, http.MethodPatch, "/bookings/7", "", "1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("approved value reaches the service", func(t *testing.T) {
		svc := &stubService{confirmed: sample}
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodPatch, "/bookings/7?approved=true", "", "1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, svc.lastApproved)

		w = doRequest(r, http.MethodPatch, "/bookings/7?approved=false", "", "1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, svc.lastApproved)
	})

	t.Run("invalid booking id", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := doRequest(r, http.MethodPatch, "/bookings/abc?approved=true", "", "1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already decided", func(t *testing.T) {
		r := newTestRouter(&stubService{confirmErr: booking.ErrAlreadyDecided})
		w := doRequest(r, http.MethodPatch, "/bookings/7?approved=true", "", "1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListBookingsEndpoint(t *testing.T) {
	t.Run("defaults for state and page", func(t *testing.T) {
		svc := &stubService{listed: []*booking.Booking{sample}}
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodGet, "/bookings", "", "2")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ALL", svc.lastState)
		assert.Equal(t, 0, svc.lastFrom)
		assert.Equal(t, 10, svc.lastSize)

		var resp []BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, int64(7), resp[0].ID)
	})

	t.Run("owner listing routes past the id parameter", func(t *testing.T) {
		svc := &stubService{listed: []*booking.Booking{}}
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodGet, "/bookings/owner?state=WAITING&from=4&size=2", "", "1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "WAITING", svc.lastState)
		assert.Equal(t, 4, svc.lastFrom)
		assert.Equal(t, 2, svc.lastSize)
	})

	t.Run("negative from is rejected", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := doRequest(r, http.MethodGet, "/bookings?from=-1", "", "2")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unsupported state bubbles up", func(t *testing.T) {
		r := newTestRouter(&stubService{listErr: booking.ErrUnsupportedState})
		w := doRequest(r, http.MethodGet, "/bookings?state=SOMEDAY", "", "2")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unknown state: UNSUPPORTED_STATUS")
	})
}
