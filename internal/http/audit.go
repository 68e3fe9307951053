package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const (
	defaultAuditPageSize = 25
	maxAuditPageSize     = 100
)

// AuditReader exposes the recorded history of catalog changes.
type AuditReader interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetBookHistory(bookID string) ([]entities.AuditEvent, error)
}

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{
		reader: reader,
	}
}

// GetAuditEvents returns paginated audit events.
// GET /api/audit?page=1&limit=25&type=create
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		respondBadRequest(c, "invalid page")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditPageSize)))
	if err != nil {
		respondBadRequest(c, "invalid limit")
		return
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxAuditPageSize {
		limit = defaultAuditPageSize
	}
	offset := (page - 1) * limit

	var events []entities.AuditEvent
	var total int64

	eventType := c.Query("type")
	switch entities.AuditEventType(eventType) {
	case "":
		events, total, err = ac.reader.GetEvents(limit, offset)
	case entities.AuditEventCreate, entities.AuditEventUpdate, entities.AuditEventDelete:
		events, total, err = ac.reader.GetEventsByType(entities.AuditEventType(eventType), limit, offset)
	default:
		respondBadRequest(c, "invalid type")
		return
	}
	if err != nil {
		respondInternalError(c, err, "Failed to load audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	respondOK(c, "", gin.H{
		"events":     events,
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": totalPages,
	})
}

// GetBookHistory returns every recorded change for one book, oldest first.
// It works for deleted books too.
// GET /api/audit/books/:bookId
func (ac *AuditController) GetBookHistory(c *gin.Context) {
	events, err := ac.reader.GetBookHistory(c.Param("bookId"))
	if err != nil {
		respondInternalError(c, err, "Failed to load book history")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	respondOK(c, "", gin.H{"events": events})
}
