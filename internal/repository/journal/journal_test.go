package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/envmon/console/internal/database"
	"github.com/envmon/console/internal/models"
	"github.com/envmon/console/internal/repository"
)

func newTestRepo(t *testing.T) *ActivityRepo {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewActivityRepository(db)
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo
}

func TestRecordAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	entry := &models.ActivityEntry{
		Action:    models.ActionUpload,
		Kind:      "csv",
		Target:    "readings.csv",
		Outcome:   models.OutcomeSuccess,
		Detail:    "Upload successful: 3 rows inserted. 0 rows failed.",
		RequestID: "req_abc",
	}
	if err := repo.Record(ctx, entry); err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.ID == "" || entry.CreatedAt.IsZero() {
		t.Fatalf("id and timestamp must be assigned: %+v", entry)
	}

	recent, err := repo.Recent(ctx, 10)
	if err != nil || len(recent) != 1 {
		t.Fatalf("recent = %+v, %v", recent, err)
	}
	got := recent[0]
	if got.ID != entry.ID || got.Target != "readings.csv" || got.Action != models.ActionUpload || got.RequestID != "req_abc" {
		t.Fatalf("got %+v", got)
	}
}

func TestRecordRejectsIncompleteEntries(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Record(context.Background(), &models.ActivityEntry{Kind: "csv"}); !errors.Is(err, repository.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, target := range []string{"first", "second", "third"} {
		err := repo.Record(ctx, &models.ActivityEntry{
			Action:    models.ActionDelete,
			Kind:      "sensor",
			Target:    target,
			Outcome:   models.OutcomeSuccess,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].Target != "third" || recent[1].Target != "second" {
		t.Fatalf("recent = %+v", recent)
	}
}

func TestDeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	now := time.Now().UTC()
	for _, at := range []time.Time{now.Add(-48 * time.Hour), now.Add(-25 * time.Hour), now.Add(-time.Hour)} {
		err := repo.Record(ctx, &models.ActivityEntry{
			Action: models.ActionUpload, Kind: "audio", Outcome: models.OutcomeFailure, CreatedAt: at,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	n, err := repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("pruned %d, want 2", n)
	}
	left, _ := repo.Recent(ctx, 10)
	if len(left) != 1 {
		t.Fatalf("left = %d", len(left))
	}
}
