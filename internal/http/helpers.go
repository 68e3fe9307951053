package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"  // client error, 4xx
	StatusError   = "error" // server error, 5xx
)

// --- Response Types ---

// Response is the envelope every API response is wrapped in.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// --- Failure Helpers ---

// respondFail sends a client error envelope with the given status code.
func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Status: StatusFail, Message: message})
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	respondFail(c, http.StatusBadRequest, message)
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	respondFail(c, http.StatusNotFound, message)
}

// respondInternalError logs the error and sends a 500 response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, message string) {
	log.Printf("Internal error (%s %s): %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, Response{Status: StatusError, Message: message})
}

// --- Success Helpers ---

// respondOK sends a 200 OK response with an optional message and data.
func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: message, Data: data})
}

// respondCreated sends a 201 Created response.
func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{Status: StatusSuccess, Message: message, Data: data})
}
