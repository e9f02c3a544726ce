package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simple-survey/backend/pkg/response"
)

// AdminAuth returns a middleware that gates admin endpoints behind the
// single shared bearer secret. If no secret is configured the gate fails
// closed: every request gets a 500 rather than silent access.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			response.Internal(c, "Admin token not configured")
			c.Abort()
			return
		}
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || !tokenEqual(parts[1], secret) {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

// tokenEqual compares the presented token in constant time.
func tokenEqual(presented, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) == 1
}
