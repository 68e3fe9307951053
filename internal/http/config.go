package http

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/readonly"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog *catalog.Service

	// Audit trail (optional, nil when disabled)
	Database     *database.Database
	AuditService *audit.Service

	// Read-only mode (optional)
	ReadOnly *readonly.Middleware

	// Application info
	Version string
}
