package http

import (
	"time"

	"github.com/peergear/item-sharing-backend/internal/itemrequest"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type RequestResponse struct {
	ID          int64               `json:"id"`
	Description string              `json:"description"`
	Created     time.Time           `json:"created"`
	Items       []itemrequest.Reply `json:"items"`
}

func NewRequestResponse(r *itemrequest.Request) RequestResponse {
	items := r.Items
	if items == nil {
		items = make([]itemrequest.Reply, 0)
	}
	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
		Items:       items,
	}
}
