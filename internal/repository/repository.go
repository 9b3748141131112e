// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/envmon/console/internal/database"
	"github.com/envmon/console/internal/models"
)

var (
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// ActivityRepository defines the journal of uploads and deletes issued
// through the console.
type ActivityRepository interface {
	database.Repository
	Migrate(ctx context.Context) error
	Record(ctx context.Context, entry *models.ActivityEntry) error
	Recent(ctx context.Context, limit int) ([]models.ActivityEntry, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}
