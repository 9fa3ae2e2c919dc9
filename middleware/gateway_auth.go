package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GatewayAuthMiddleware trusts calls from the transport gateway only.
// The gateway authenticates itself with a shared token and vouches for
// the end user by passing their id; the service itself does no user
// authentication.
func GatewayAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authToken := c.GetHeader("X-Internal-Auth")
		if token == "" || authToken != token {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Forbidden",
			})
			return
		}

		uid := c.GetHeader("X-User-ID")
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing X-User-ID header",
			})
			return
		}

		c.Set("uid", uid)
		c.Next()
	}
}
