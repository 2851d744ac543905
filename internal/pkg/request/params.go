package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peergear/item-sharing-backend/internal/pkg/apperror"
)

// PageParams holds the offset-based pagination query parameters shared by
// every listing endpoint: from is the row offset, size the page length.
type PageParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

// Validate checks pagination bounds.
func (p *PageParams) Validate() error {
	if p.From < 0 {
		return apperror.New(http.StatusBadRequest, "from must not be negative")
	}
	if p.Size < 1 {
		return apperror.New(http.StatusBadRequest, "size must be positive")
	}
	return nil
}

// ParseID extracts a positive int64 path parameter.
func ParseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.Newf(http.StatusBadRequest, "invalid %s", name)
	}
	return id, nil
}
