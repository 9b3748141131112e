// FilePath: internal/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/models"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// View names a workspace slot guarded by its own request sequence.
type View string

const (
	ViewQuery       View = "query"
	ViewCorrelation View = "correlation"
)

// ErrStale is returned by Commit when a newer request for the same view has
// begun since the token was issued. The result must be discarded.
var ErrStale = errors.New("stale response discarded")

// Flash is a one-shot status carried across a redirect.
type Flash struct {
	Message string `json:"message"`
	IsError bool   `json:"is_error"`
}

// Workspace is the per-browser-session state of the console.
type Workspace struct {
	// Query is the last successfully fetched query.
	Query *models.QueryResult `json:"query,omitempty"`
	// CorrelationID and Correlation are the last fetched bundle.
	CorrelationID string                      `json:"correlation_id,omitempty"`
	Correlation   *models.EnvironmentalBundle `json:"correlation,omitempty"`
	Flash         *Flash                      `json:"flash,omitempty"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// Store keeps workspaces and the request sequence of each view.
//
// Begin issues a token strictly greater than every token previously issued
// for the same session and view. Commit applies fn to the workspace only if
// token is still the latest one, otherwise it returns ErrStale.
type Store interface {
	Load(ctx context.Context, sid string) (*Workspace, error)
	Update(ctx context.Context, sid string, fn func(*Workspace)) error
	Begin(ctx context.Context, sid string, view View) (uint64, error)
	Commit(ctx context.Context, sid string, view View, token uint64, fn func(*Workspace)) error
	Close() error
}

// NewSessionID returns a fresh opaque session identifier.
func NewSessionID() string {
	return nuts.NID("ses", 24)
}

// New creates the store selected by cfg.
func New(cfg config.SessionConfig) (Store, error) {
	switch cfg.Store {
	case "", "memory":
		return NewMemoryStore(cfg.TTL), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("error connecting to Redis: %w", err)
		}
		nuts.L.Infof("[Session] Connected to Redis %s:%d/%d", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
		return NewRedisStore(client, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

// TakeFlash loads the pending flash of sid and clears it.
func TakeFlash(ctx context.Context, s Store, sid string) (*Flash, error) {
	var flash *Flash
	err := s.Update(ctx, sid, func(ws *Workspace) {
		flash = ws.Flash
		ws.Flash = nil
	})
	return flash, err
}

// SetFlash stores a flash for the next page render of sid.
func SetFlash(ctx context.Context, s Store, sid, message string, isError bool) error {
	return s.Update(ctx, sid, func(ws *Workspace) {
		ws.Flash = &Flash{Message: message, IsError: isError}
	})
}
