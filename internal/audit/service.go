package audit

import (
	"fmt"
	"log"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const entityTypeBook = "book"

var metadataJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestInfo identifies the HTTP request that triggered an event.
type RequestInfo struct {
	RequestID string
	IPAddress string
	UserAgent string
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo     *audit.Repository
	inFlight sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.inFlight.Add(1)
	go func() {
		defer s.inFlight.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every event queued with LogAsync has been written.
func (s *Service) Wait() {
	s.inFlight.Wait()
}

// LogBookCreated records a successful create.
func (s *Service) LogBookCreated(info RequestInfo, book entities.Book) {
	event := s.bookEvent(info, entities.AuditEventCreate, book.ID)
	event.Description = "Added book: " + book.Name
	event.Metadata = encodeMetadata(bookMetadata(book))
	s.LogAsync(event)
}

// LogBookUpdated records a successful update.
func (s *Service) LogBookUpdated(info RequestInfo, book entities.Book) {
	event := s.bookEvent(info, entities.AuditEventUpdate, book.ID)
	event.Description = "Updated book: " + book.Name
	event.Metadata = encodeMetadata(bookMetadata(book))
	s.LogAsync(event)
}

// LogBookDeleted records a successful delete.
func (s *Service) LogBookDeleted(info RequestInfo, book entities.Book) {
	event := s.bookEvent(info, entities.AuditEventDelete, book.ID)
	event.Description = "Deleted book: " + book.Name
	s.LogAsync(event)
}

// LogBookFailure records a rejected create, update or delete.
// bookID is empty for failed creates.
func (s *Service) LogBookFailure(info RequestInfo, eventType entities.AuditEventType, bookID string, err error) {
	event := s.bookEvent(info, eventType, bookID)
	event.Description = fmt.Sprintf("Failed book %s", eventType)
	event.Status = entities.AuditStatusFailed
	if err != nil {
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetBookHistory returns every recorded event for one book, oldest first.
func (s *Service) GetBookHistory(bookID string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(entityTypeBook, bookID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func (s *Service) bookEvent(info RequestInfo, eventType entities.AuditEventType, bookID string) *entities.AuditEvent {
	return &entities.AuditEvent{
		EventType:  eventType,
		Action:     entityTypeBook + "_" + string(eventType),
		EntityType: entityTypeBook,
		EntityID:   bookID,
		RequestID:  info.RequestID,
		IPAddress:  info.IPAddress,
		UserAgent:  truncate(info.UserAgent, 500),
		Status:     entities.AuditStatusSuccess,
	}
}

func bookMetadata(book entities.Book) map[string]any {
	return map[string]any{
		"name":      book.Name,
		"pageCount": book.PageCount,
		"readPage":  book.ReadPage,
		"finished":  book.Finished,
		"reading":   book.Reading,
	}
}

func encodeMetadata(metadata map[string]any) string {
	data, err := metadataJSON.Marshal(metadata)
	if err != nil {
		log.Printf("Failed to encode audit metadata: %v", err)
		return ""
	}
	return string(data)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
