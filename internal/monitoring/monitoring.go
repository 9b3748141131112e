package monitoring

import (
	"sort"
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// Config holds monitoring configuration
type Config struct {
	// Window is how long individual event timestamps are kept for
	// GetEventMetrics. Totals are kept for the process lifetime.
	Window time.Duration
}

type event struct {
	at     time.Time
	labels map[string]string
}

// Service counts console events in process.
type Service struct {
	config Config
	mu     sync.Mutex
	totals map[string]int64
	recent map[string][]event
	now    func() time.Time
}

// NewService creates a new monitoring service
func NewService(config Config) *Service {
	if config.Window <= 0 {
		config.Window = 24 * time.Hour
	}
	return &Service{
		config: config,
		totals: make(map[string]int64),
		recent: make(map[string][]event),
		now:    time.Now,
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ts := s.now()
	nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals[eventName]++
	s.recent[eventName] = append(s.trim(eventName, ts), event{at: ts, labels: labels})
}

// trim drops timestamps that fell out of the window. Caller holds mu.
func (s *Service) trim(eventName string, now time.Time) []event {
	events := s.recent[eventName]
	cutoff := now.Add(-s.config.Window)
	i := sort.Search(len(events), func(i int) bool { return !events[i].at.Before(cutoff) })
	return events[i:]
}

// GetEventMetrics counts events of eventType seen within duration, grouped by
// the value of their "kind" label. The "total" key holds the overall count.
func (s *Service) GetEventMetrics(eventType string, duration time.Duration) (map[string]int64, error) {
	now := s.now()
	cutoff := now.Add(-duration)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int64{"total": 0}
	for _, e := range s.trim(eventType, now) {
		if e.at.Before(cutoff) {
			continue
		}
		out["total"]++
		if kind := e.labels["kind"]; kind != "" {
			out[kind]++
		}
	}
	return out, nil
}

// Snapshot returns the lifetime count of every recorded event.
func (s *Service) Snapshot() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.totals))
	for k, v := range s.totals {
		out[k] = v
	}
	return out
}
