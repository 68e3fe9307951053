package config

const (
	// DefaultPort is the HTTP port used when PORT is unset.
	DefaultPort = 9000

	// DefaultAuditDatabasePath is the default path for the audit trail database.
	// Books themselves are never written to disk.
	DefaultAuditDatabasePath = "./bookshelf-audit.db"
)
