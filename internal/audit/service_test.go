package audit

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	auditRepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := auditRepo.NewRepository(db.DB)
	svc := NewService(repo)

	return svc, db.DB
}

var testInfo = RequestInfo{
	RequestID: "req-123",
	IPAddress: "10.0.0.1",
	UserAgent: "curl/8.0",
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "book_create",
		Description: "Test event",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "book_create", saved.Action)
}

func TestService_LogBookCreated(t *testing.T) {
	svc, db := setupTestService(t)

	book := entities.Book{ID: "abcdefghijklmnop", Name: "Dune", PageCount: 10, ReadPage: 10, Finished: true}
	svc.LogBookCreated(testInfo, book)
	svc.Wait()

	var event entities.AuditEvent
	err := db.Where("action = ?", "book_create").First(&event).Error
	require.NoError(t, err)

	assert.Equal(t, entities.AuditEventCreate, event.EventType)
	assert.Equal(t, "book", event.EntityType)
	assert.Equal(t, "abcdefghijklmnop", event.EntityID)
	assert.Equal(t, "Added book: Dune", event.Description)
	assert.Equal(t, "req-123", event.RequestID)
	assert.Equal(t, "10.0.0.1", event.IPAddress)
	assert.Equal(t, "curl/8.0", event.UserAgent)
	assert.Equal(t, entities.AuditStatusSuccess, event.Status)

	var metadata map[string]any
	require.NoError(t, jsoniter.UnmarshalFromString(event.Metadata, &metadata))
	assert.Equal(t, "Dune", metadata["name"])
	assert.Equal(t, true, metadata["finished"])
	assert.Equal(t, float64(10), metadata["pageCount"])
}

func TestService_LogBookUpdatedAndDeleted(t *testing.T) {
	svc, _ := setupTestService(t)

	book := entities.Book{ID: "book-1", Name: "Emma"}
	svc.LogBookCreated(testInfo, book)
	svc.Wait()
	svc.LogBookUpdated(testInfo, book)
	svc.Wait()
	svc.LogBookDeleted(testInfo, book)
	svc.Wait()

	history, err := svc.GetBookHistory("book-1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "book_create", history[0].Action)
	assert.Equal(t, "book_update", history[1].Action)
	assert.Equal(t, "book_delete", history[2].Action)
	assert.Equal(t, "Deleted book: Emma", history[2].Description)
	assert.Empty(t, history[2].Metadata)
}

func TestService_LogBookFailure(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogBookFailure(testInfo, entities.AuditEventUpdate, "missing-id", errors.New("book not found"))
	svc.Wait()

	var event entities.AuditEvent
	err := db.Where("action = ?", "book_update").First(&event).Error
	require.NoError(t, err)

	assert.Equal(t, entities.AuditStatusFailed, event.Status)
	assert.Equal(t, "book not found", event.ErrorMsg)
	assert.Equal(t, "missing-id", event.EntityID)
	assert.Equal(t, "Failed book update", event.Description)
}

func TestService_LogBookFailure_TruncatesLongErrors(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogBookFailure(testInfo, entities.AuditEventCreate, "", errors.New(strings.Repeat("x", 800)))
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.First(&event).Error)
	assert.Len(t, event.ErrorMsg, 500)
	assert.True(t, strings.HasSuffix(event.ErrorMsg, "..."))
}

func TestService_GetEventsByType(t *testing.T) {
	svc, _ := setupTestService(t)

	svc.LogBookCreated(testInfo, entities.Book{ID: "a", Name: "A"})
	svc.LogBookCreated(testInfo, entities.Book{ID: "b", Name: "B"})
	svc.LogBookDeleted(testInfo, entities.Book{ID: "a", Name: "A"})
	svc.Wait()

	events, total, err := svc.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, events, 3)

	creates, total, err := svc.GetEventsByType(entities.AuditEventCreate, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, creates, 2)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	require.NoError(t, svc.Log(&entities.AuditEvent{
		Action:    "book_create",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-40 * 24 * time.Hour),
	}))
	require.NoError(t, svc.Log(&entities.AuditEvent{
		Action: "book_create",
		Status: entities.AuditStatusSuccess,
	}))

	deleted, err := svc.DeleteOldEvents(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
