package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peergear/item-sharing-backend/internal/auth"
	"github.com/peergear/item-sharing-backend/internal/itemrequest"
	"github.com/peergear/item-sharing-backend/internal/pkg/request"
	"github.com/peergear/item-sharing-backend/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), itemrequest.CreateRequest{
		Description: body.Description,
	}, auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(r))
}

func (h *Handler) ListOwn(c *gin.Context) {
	requests, err := h.service.ListOwn(c.Request.Context(), auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(requests))
}

func (h *Handler) ListAll(c *gin.Context) {
	var page request.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := page.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	requests, err := h.service.ListAll(c.Request.Context(), auth.UserID(c), page.From, page.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(requests))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.ParseID(c, "requestId")
	if err != nil {
		response.Error(c, err)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id, auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRequestResponse(r))
}

func toResponses(requests []*itemrequest.Request) []RequestResponse {
	out := make([]RequestResponse, len(requests))
	for i, r := range requests {
		out[i] = NewRequestResponse(r)
	}
	return out
}
