// FilePath: internal/repository/journal/journal.activity.go
package journal

import (
	"context"
	"time"

	"github.com/envmon/console/internal/database"
	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
	"github.com/envmon/console/internal/repository"
	"github.com/google/uuid"
	nuts "github.com/vaudience/go-nuts"
)

const schema = `
CREATE TABLE IF NOT EXISTS console_activity (
	id         TEXT PRIMARY KEY,
	action     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	target     TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	detail     TEXT NOT NULL,
	request_id TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_console_activity_created_at ON console_activity (created_at);
`

// ActivityRepo implements repository.ActivityRepository on SQLite or PostgreSQL.
type ActivityRepo struct {
	BaseRepo
}

// NewActivityRepository creates a journal repository on db.
func NewActivityRepository(db database.DB) *ActivityRepo {
	return &ActivityRepo{BaseRepo: BaseRepo{db: db}}
}

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// Migrate creates the journal table if it does not exist.
func (r *ActivityRepo) Migrate(ctx context.Context) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(schema) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.NewDatabaseError("failed to migrate journal", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("failed to commit journal migration", err)
	}
	return nil
}

// Record inserts entry, assigning an id and timestamp when missing.
func (r *ActivityRepo) Record(ctx context.Context, entry *models.ActivityEntry) error {
	if entry.Action == "" || entry.Outcome == "" {
		return repository.ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO console_activity (
			id, action, kind, target, outcome, detail, request_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.ExecContext(ctx, query,
		entry.ID,
		entry.Action,
		entry.Kind,
		entry.Target,
		entry.Outcome,
		entry.Detail,
		entry.RequestID,
		entry.CreatedAt,
	)
	if err != nil {
		nuts.L.Errorf("[ActivityRepository] Failed to record %s %s: %v", entry.Action, entry.Kind, err)
		return err
	}
	return nil
}

// Recent returns the newest entries first.
func (r *ActivityRepo) Recent(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 20
	}
	query := r.rebind(`
		SELECT id, action, kind, target, outcome, detail, request_id, created_at
		FROM console_activity
		ORDER BY created_at DESC
		LIMIT ?`)

	entries := []models.ActivityEntry{}
	if err := r.db.GetDB().SelectContext(ctx, &entries, query, limit); err != nil {
		nuts.L.Errorf("[ActivityRepository] Failed to list recent activity: %v", err)
		return nil, errors.NewDatabaseError("failed to list activity", err)
	}
	return entries, nil
}

// DeleteOlderThan prunes entries created before the cutoff.
func (r *ActivityRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.ExecContext(ctx, `DELETE FROM console_activity WHERE created_at < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
