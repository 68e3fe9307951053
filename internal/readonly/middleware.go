// Package readonly provides a switch that turns the API into a read-only
// service, e.g. for public showcases of a populated shelf.
package readonly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BlockedMessage is returned to clients whose write request was rejected.
const BlockedMessage = "This action is disabled in read-only mode"

// ContextKeyReadOnly stores the mode flag in the gin context.
const ContextKeyReadOnly = "read_only"

// Middleware blocks write operations when enabled.
// GET, HEAD and OPTIONS are always allowed.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a read-only mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether read-only mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)

		if !m.enabled || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":  "fail",
			"message": BlockedMessage,
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
