package auth

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SharerHeader carries the acting user's id on every authenticated route.
// The gateway is trusted to have validated it; the server still parses
// defensively so it can run without the gateway in front.
const SharerHeader = "X-Sharer-User-Id"

// SharerRequired is a gin middleware that requires a well-formed
// X-Sharer-User-Id header and stores the id in the request context.
// It does not check that the user exists; services do that per operation.
func SharerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(SharerHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + SharerHeader + " header",
			})
			return
		}

		id, err := strconv.ParseInt(header, 10, 64)
		if err != nil || id < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + SharerHeader + " header",
			})
			return
		}

		c.Set("sharerID", id)
		c.Next()
	}
}
