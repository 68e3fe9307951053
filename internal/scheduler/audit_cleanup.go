// Package scheduler triggers recurring maintenance on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// AuditPruneEnqueuer hands a pruning run to the task queue.
type AuditPruneEnqueuer interface {
	EnqueuePruneAuditEvents(retentionDays int) (string, error)
}

// AuditCleanupScheduler periodically enqueues audit retention cleanup.
type AuditCleanupScheduler struct {
	enqueuer      AuditPruneEnqueuer
	schedule      string
	retentionDays int

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewAuditCleanupScheduler creates a scheduler; it does nothing until Start.
func NewAuditCleanupScheduler(enqueuer AuditPruneEnqueuer, schedule string, retentionDays int) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		enqueuer:      enqueuer,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start registers the cleanup job and starts the cron loop. The scheduler
// stops when ctx is cancelled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(); err != nil {
			log.Printf("Audit cleanup scheduler: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s', retention %d days. Next run: %v",
		s.schedule, s.retentionDays, s.nextRunLocked())

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Printf("Audit cleanup scheduler: stopped")
}

// RunNow enqueues a cleanup immediately and returns the task id.
func (s *AuditCleanupScheduler) RunNow() (string, error) {
	id, err := s.enqueuer.EnqueuePruneAuditEvents(s.retentionDays)
	if err != nil {
		return "", err
	}
	log.Printf("Audit cleanup scheduler: enqueued task %s", id)
	return id, nil
}

// IsRunning returns whether the scheduler is active.
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next cleanup will be enqueued, or nil when stopped.
func (s *AuditCleanupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	next := s.nextRunLocked()
	return &next
}

// nextRunLocked falls back to the schedule itself until the cron loop has
// computed the entry's first activation.
func (s *AuditCleanupScheduler) nextRunLocked() time.Time {
	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return time.Time{}
	}
	if entry.Next.IsZero() {
		return entry.Schedule.Next(time.Now())
	}
	return entry.Next
}
