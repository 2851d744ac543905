package itemrequest

import (
	"net/http"
	"time"

	"github.com/peergear/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
)

// Request is a wish for an item that does not exist in the catalog yet.
// Items created in answer to it carry its id.
type Request struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
	Items       []Reply
}

// Reply is an item offered in answer to a request.
type Reply struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
}
