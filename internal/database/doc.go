// Package database provides the audit trail store.
//
// Books are kept in memory by the catalog package and never reach this
// layer. What is persisted is the history of changes made to them:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── audit/           # Audit event persistence and retention
//
// # Usage
//
//	db, err := database.NewDatabase("./bookshelf-audit.db")
//	repo := audit.NewRepository(db.DB)
//	events, total, err := repo.GetEvents(50, 0)
package database
