package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Catalog
// =============================================================================

var _ http.BookCatalog = (*catalog.Service)(nil)
var _ http.BookCounter = (*catalog.Service)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ http.BookAuditor = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.AuditPruneEnqueuer = (*tasks.Client)(nil)
