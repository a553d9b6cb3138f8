package middleware

import "github.com/gin-gonic/gin"

// CacheControlMiddleware lets clients cache a response briefly. Used on
// the dashboard, whose metrics already sit behind a short server-side
// cache with the same horizon.
func CacheControlMiddleware(duration string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "private, max-age="+duration)
		c.Next()
	}
}
