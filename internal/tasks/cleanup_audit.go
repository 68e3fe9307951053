package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultAuditRetentionDays applies when a task carries no retention.
const DefaultAuditRetentionDays = 30

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// PruneAuditEventsTask removes audit events older than RetentionDays.
type PruneAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for audit pruning tasks.
func (t PruneAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prune_audit_events",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PruneAuditEventsProcessor creates a processor function for PruneAuditEventsTask.
func PruneAuditEventsProcessor(cleaner AuditEventCleaner) backlite.QueueProcessor[PruneAuditEventsTask] {
	return func(ctx context.Context, task PruneAuditEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit event cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = DefaultAuditRetentionDays
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := cleaner.DeleteOldEvents(retention)
		if err != nil {
			return fmt.Errorf("prune audit events: %w", err)
		}

		log.Printf("[TASK] Pruned %d audit events older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewPruneAuditEventsQueue creates a backlite queue for audit pruning tasks.
func NewPruneAuditEventsQueue(cleaner AuditEventCleaner) backlite.Queue {
	return backlite.NewQueue(PruneAuditEventsProcessor(cleaner))
}

// EnqueuePruneAuditEvents schedules one pruning run and returns its task id.
func (c *Client) EnqueuePruneAuditEvents(retentionDays int) (string, error) {
	ids, err := c.Add(PruneAuditEventsTask{RetentionDays: retentionDays}).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue audit pruning: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("enqueue audit pruning: no task id returned")
	}
	return ids[0], nil
}
