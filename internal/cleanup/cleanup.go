package cleanup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/envmon/console/internal/repository"
	"github.com/robfig/cron/v3"
	nuts "github.com/vaudience/go-nuts"
)

// EventJournalPruned is emitted after every prune with the number of removed entries.
const EventJournalPruned = "journal.pruned"

// CleanupService prunes activity journal entries past their retention on a
// cron schedule.
type CleanupService struct {
	activity  repository.ActivityRepository
	retention time.Duration
	cron      *cron.Cron
	events    *nuts.EventEmitter
	now       func() time.Time
}

// New creates a new CleanupService
func New(activity repository.ActivityRepository, retention time.Duration) *CleanupService {
	return &CleanupService{
		activity:  activity,
		retention: retention,
		cron:      cron.New(),
		events:    nuts.NewEventEmitter(),
		now:       time.Now,
	}
}

// Start schedules Prune. Schedules use the standard five-field cron syntax or
// descriptors such as "@hourly".
func (s *CleanupService) Start(schedule string) error {
	if s.retention <= 0 || s.activity == nil {
		nuts.L.Infof("[Cleanup] Journal retention disabled")
		return nil
	}
	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.Prune(context.Background()); err != nil {
			nuts.L.Errorf("[Cleanup] Journal prune failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	nuts.L.Infof("[Cleanup] Pruning journal entries older than %v (%s)", s.retention, schedule)
	return nil
}

// Stop halts the scheduler and waits for a running prune to finish or ctx to end.
func (s *CleanupService) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Prune deletes journal entries older than the retention.
func (s *CleanupService) Prune(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.activity.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}

	// Emit event after successful deletion
	if err := s.events.Emit(EventJournalPruned, strconv.FormatInt(n, 10)); err != nil {
		nuts.L.Warnf("[Cleanup] Failed to emit %s: %v", EventJournalPruned, err)
	}
	return n, nil
}

// OnCleanup registers a callback for cleanup events. The handler receives
// the event payload, e.g. the pruned entry count.
func (s *CleanupService) OnCleanup(event string, handler func(payload string)) {
	if _, err := s.events.On(event, "cleanup_handler", handler); err != nil {
		nuts.L.Warnf("[Cleanup] Failed to subscribe to %s: %v", event, err)
	}
}
