package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Books   int               `json:"books"`
	Checks  map[string]string `json:"checks"`
}

// BookCounter reports the size of the catalog.
type BookCounter interface {
	Len() int
}

type HealthController struct {
	db      *database.Database
	books   BookCounter
	version string
}

// NewHealthController creates the health controller. db is nil when the
// audit trail is disabled.
func NewHealthController(db *database.Database, books BookCounter, version string) *HealthController {
	return &HealthController{
		db:      db,
		books:   books,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["audit_database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["audit_database"] = "ok"
		}
	} else {
		checks["audit_database"] = "not configured"
	}

	books := 0
	if h.books != nil {
		books = h.books.Len()
		checks["catalog"] = "ok"
	} else {
		checks["catalog"] = "not configured"
		status = "unhealthy"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Books:   books,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// Ping is a liveness probe.
func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
