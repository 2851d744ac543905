package auth

import "github.com/gin-gonic/gin"

// UserID returns the acting user's id stored by SharerRequired, or 0.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get("sharerID"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
