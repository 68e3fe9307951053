package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/bookshelf/internal/audit"
)

const (
	// HeaderRequestID carries the request id in both directions.
	HeaderRequestID = "X-Request-ID"
	// ContextKeyRequestID stores the request id in the gin context.
	ContextKeyRequestID = "request_id"

	maxRequestIDLength = 64
)

// RequestIDMiddleware reuses the caller's X-Request-ID or assigns a new
// UUID, and echoes it in the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// SecurityHeadersMiddleware adds security headers suited to a JSON-only API.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")

		// Responses are never rendered as documents.
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		c.Next()
	}
}

// requestInfo collects the request attributes recorded on audit events.
func requestInfo(c *gin.Context) audit.RequestInfo {
	return audit.RequestInfo{
		RequestID: c.GetString(ContextKeyRequestID),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func notFoundHandler(c *gin.Context) {
	respondFail(c, http.StatusNotFound, "Route not found")
}

func methodNotAllowedHandler(c *gin.Context) {
	respondFail(c, http.StatusMethodNotAllowed, "Method not allowed")
}
