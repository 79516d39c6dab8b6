// Package middleware holds the gin middleware shared by the HTTP API
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/age-toolbox/internal/pkg/idgen"
)

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID ensures every request has an ID for tracing and logs. A
// client-supplied X-Request-ID is kept.
func RequestID(gen idgen.Generator) gin.HandlerFunc {
	if gen == nil {
		gen = idgen.NewUUID("req")
	}

	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = gen.Generate()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(HeaderRequestID, rid)
		c.Next()
	}
}

// GetRequestID extracts request_id from gin context when available
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(requestIDKey)
}
