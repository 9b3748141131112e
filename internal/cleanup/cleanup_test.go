package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/envmon/console/internal/database"
	"github.com/envmon/console/internal/models"
)

type fakeActivity struct {
	cutoff time.Time
	pruned int64
}

func (f *fakeActivity) BeginTx(context.Context) (database.Transaction, error) { return nil, nil }
func (f *fakeActivity) Migrate(context.Context) error                         { return nil }
func (f *fakeActivity) Record(context.Context, *models.ActivityEntry) error   { return nil }
func (f *fakeActivity) Recent(context.Context, int) ([]models.ActivityEntry, error) {
	return nil, nil
}
func (f *fakeActivity) DeleteOlderThan(_ context.Context, before time.Time) (int64, error) {
	f.cutoff = before
	return f.pruned, nil
}

func TestPruneUsesRetention(t *testing.T) {
	repo := &fakeActivity{pruned: 2}
	s := New(repo, 720*time.Hour)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	got := make(chan string, 1)
	s.OnCleanup(EventJournalPruned, func(id string) { got <- id })

	n, err := s.Prune(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("prune = %d, %v", n, err)
	}
	if want := now.Add(-720 * time.Hour); !repo.cutoff.Equal(want) {
		t.Fatalf("cutoff = %v, want %v", repo.cutoff, want)
	}
	select {
	case count := <-got:
		if count != "2" {
			t.Fatalf("event payload = %q", count)
		}
	case <-time.After(time.Second):
		t.Fatal("journal.pruned not emitted")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := New(&fakeActivity{}, time.Hour)
	if err := s.Start("every tuesday"); err == nil {
		t.Fatal("expected schedule error")
	}
	if err := s.Start("@hourly"); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
