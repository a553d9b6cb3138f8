package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ValidateAuthInput rejects auth requests that are obviously malformed
// before they reach a handler. Body validation itself happens in the
// handlers via binding tags; binding here would consume the body.
func ValidateAuthInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost && c.Request.ContentLength > 0 {
			contentType := c.GetHeader("Content-Type")
			if !strings.HasPrefix(contentType, "application/json") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
