package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		ReadOnly
		Audit
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	ReadOnly struct {
		Enabled bool // Reject every write request with 403
	}
	Audit struct {
		Enabled         bool
		DatabasePath    string
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupEnabled  bool   // Schedule periodic pruning of old events
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

// NewConfig reads configuration from the environment. Values from a .env
// file in the working directory are loaded first when one exists; real
// environment variables always win.
func NewConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using environment variables only")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("read_only_mode", false)

	// Audit trail defaults
	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_database_path", DefaultAuditDatabasePath)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_enabled", true)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *") // Daily at 03:00

	// Task queue defaults
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		ReadOnly: ReadOnly{
			Enabled: v.GetBool("READ_ONLY_MODE"),
		},
		Audit: Audit{
			Enabled:         v.GetBool("AUDIT_ENABLED"),
			DatabasePath:    v.GetString("AUDIT_DATABASE_PATH"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupEnabled:  v.GetBool("AUDIT_CLEANUP_ENABLED"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
