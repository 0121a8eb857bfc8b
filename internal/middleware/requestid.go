package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID assigns a uuid to each request and echoes it in X-Request-ID so
// kiosk-side failures can be matched to server logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestIDFromContext returns the request id set by RequestID, or "".
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
