package monitoring

import (
	"testing"
	"time"
)

func TestEventMetricsWindow(t *testing.T) {
	s := NewService(Config{Window: time.Hour})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.RecordEvent("upload.completed", map[string]string{"kind": "csv"})
	now = now.Add(20 * time.Minute)
	s.RecordEvent("upload.completed", map[string]string{"kind": "audio"})
	s.RecordEvent("upload.completed", map[string]string{"kind": "csv"})
	now = now.Add(20 * time.Minute)

	m, err := s.GetEventMetrics("upload.completed", 30*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if m["total"] != 2 || m["csv"] != 1 || m["audio"] != 1 {
		t.Fatalf("metrics = %v", m)
	}

	now = now.Add(2 * time.Hour)
	m, _ = s.GetEventMetrics("upload.completed", 24*time.Hour)
	if m["total"] != 0 {
		t.Fatalf("events outside the window must be dropped: %v", m)
	}
	if s.Snapshot()["upload.completed"] != 3 {
		t.Fatalf("snapshot = %v", s.Snapshot())
	}
}
