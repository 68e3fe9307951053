package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "book_create",
		Description: "Added book: Dune",
		EntityType:  "book",
		EntityID:    "abcdefghijklmnop",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	for i := 0; i < 15; i++ {
		event := &entities.AuditEvent{
			EventType:   entities.AuditEventCreate,
			Action:      "book_create",
			Description: "Test event",
			Status:      entities.AuditStatusSuccess,
			CreatedAt:   time.Now().Add(time.Duration(-i) * time.Hour),
		}
		require.NoError(t, repo.LogEvent(event))
	}

	for i := 0; i < 5; i++ {
		event := &entities.AuditEvent{
			EventType: entities.AuditEventDelete,
			Action:    "book_delete",
			Status:    entities.AuditStatusSuccess,
		}
		require.NoError(t, repo.LogEvent(event))
	}

	t.Run("get all events", func(t *testing.T) {
		events, total, err := repo.GetEvents(50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 20)
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents(10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 10)

		events, _, err = repo.GetEvents(10, 15)
		require.NoError(t, err)
		assert.Len(t, events, 5)
	})

	t.Run("most recent first", func(t *testing.T) {
		events, _, err := repo.GetEvents(50, 0)
		require.NoError(t, err)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].CreatedAt.After(events[i-1].CreatedAt))
		}
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		events, _, err := repo.GetEvents(0, -3)
		require.NoError(t, err)
		assert.Len(t, events, 20)
	})

	t.Run("filter by type", func(t *testing.T) {
		events, total, err := repo.GetEventsByType(entities.AuditEventDelete, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		for _, e := range events {
			assert.Equal(t, entities.AuditEventDelete, e.EventType)
		}
	})
}

func TestRepository_GetEventsForEntity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	base := time.Now().Add(-time.Hour)
	actions := []string{"book_create", "book_update", "book_delete"}
	for i, action := range actions {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			Action:     action,
			EntityType: "book",
			EntityID:   "book-1",
			Status:     entities.AuditStatusSuccess,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		Action:     "book_create",
		EntityType: "book",
		EntityID:   "book-2",
		Status:     entities.AuditStatusSuccess,
	}))

	events, err := repo.GetEventsForEntity("book", "book-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, action := range actions {
		assert.Equal(t, action, events[i].Action)
	}
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			Action:    "old",
			Status:    entities.AuditStatusSuccess,
			CreatedAt: time.Now().Add(-48 * time.Hour),
		}))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			Action: "recent",
			Status: entities.AuditStatusSuccess,
		}))
	}

	deleted, err := repo.DeleteOldEvents(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)

	_, total, err := repo.GetEvents(50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
