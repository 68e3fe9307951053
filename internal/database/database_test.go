package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.DB.Migrator().HasTable(&entities.AuditEvent{}))
	assert.NoError(t, db.Ping())
}

func TestDatabase_PingAfterClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Error(t, db.Ping())
}

func TestNewDatabase_InvalidPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing", "dir", "audit.db")

	_, err := NewDatabase(dbPath)
	assert.Error(t, err)
}
