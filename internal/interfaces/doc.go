// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Catalog Interfaces
//
//   - BookCatalog: Create, list, read, update and delete books (internal/http/books.go)
//   - BookCounter: Catalog size for health checks (internal/http/health.go)
//
// ## Audit Interfaces
//
//   - BookAuditor: Record catalog changes (internal/http/books.go)
//   - AuditReader: Paginated audit history (internal/http/audit.go)
//   - AuditEventCleaner: Prune old events from a task (internal/tasks/cleanup_audit.go)
//   - AuditPruneEnqueuer: Enqueue pruning on a schedule (internal/scheduler/audit_cleanup.go)
//
// # Swapping the Catalog Store
//
// The HTTP layer depends only on BookCatalog, so a persistent store can
// replace the in-memory catalog:
//
//  1. Implement the interface, e.g. in internal/database/books/
//
//     type Repository struct { db *gorm.DB }
//
//     func (r *Repository) Create(input entities.BookInput) (string, error)
//     func (r *Repository) List(filter catalog.ListFilter) []entities.BookSummary
//
//     var _ http.BookCatalog = (*Repository)(nil)
//
//  2. Pass it to the router in entrypoint.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
