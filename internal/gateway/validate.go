package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/peergear/item-sharing-backend/internal/pkg/request"
	"github.com/peergear/item-sharing-backend/internal/pkg/response"
)

// pageGuard rejects malformed from/size query parameters before the
// request reaches the upstream server.
func pageGuard(c *gin.Context) {
	var page request.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := page.Validate(); err != nil {
		response.Error(c, err)
		c.Abort()
		return
	}
	c.Next()
}

// bodyGuard decodes the request body into target, runs the check and
// restores the body so it can still be forwarded upstream.
func bodyGuard[T any](check func(T) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		var body T
		if err := json.Unmarshal(raw, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if msg := check(body); msg != "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}

type userBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func checkNewUser(b userBody) string {
	if b.Name == nil || strings.TrimSpace(*b.Name) == "" {
		return "name is required"
	}
	return checkEmail(b.Email, true)
}

func checkUserPatch(b userBody) string {
	return checkEmail(b.Email, false)
}

func checkEmail(email *string, required bool) string {
	if email == nil || strings.TrimSpace(*email) == "" {
		if required {
			return "email is required"
		}
		return ""
	}
	at := strings.Index(*email, "@")
	if at < 1 || at == len(*email)-1 {
		return "email is malformed"
	}
	return ""
}

type itemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func checkNewItem(b itemBody) string {
	if b.Name == nil || strings.TrimSpace(*b.Name) == "" {
		return "name is required"
	}
	if b.Description == nil || strings.TrimSpace(*b.Description) == "" {
		return "description is required"
	}
	if b.Available == nil {
		return "available is required"
	}
	return ""
}

type bookingBody struct {
	ItemID *int64  `json:"itemId"`
	Start  *string `json:"start"`
	End    *string `json:"end"`
}

func checkNewBooking(b bookingBody) string {
	if b.ItemID == nil {
		return "itemId is required"
	}
	if b.Start == nil || b.End == nil {
		return "start and end are required"
	}
	return ""
}

type textBody struct {
	Text *string `json:"text"`
}

func checkCommentText(b textBody) string {
	if b.Text == nil || strings.TrimSpace(*b.Text) == "" {
		return "text is required"
	}
	return ""
}

type descriptionBody struct {
	Description *string `json:"description"`
}

func checkRequestDescription(b descriptionBody) string {
	if b.Description == nil || strings.TrimSpace(*b.Description) == "" {
		return "description is required"
	}
	return ""
}
