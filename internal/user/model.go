package user

import (
	"net/http"

	"github.com/peergear/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailTaken    = apperror.New(http.StatusConflict, "email already in use")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "name is required")
	ErrEmailRequired = apperror.New(http.StatusBadRequest, "email is required")
	ErrEmailInvalid  = apperror.New(http.StatusBadRequest, "email is malformed")
	ErrUserInUse     = apperror.New(http.StatusConflict, "user still owns items or bookings")
)

// User is a registered account. Users own items and request bookings of
// other users' items.
type User struct {
	ID    int64
	Name  string
	Email string
}
