package service

import (
	"context"
	"io"

	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
	"github.com/envmon/console/internal/monitoring"
	"github.com/envmon/console/internal/repository"
	"github.com/envmon/console/internal/session"
	nuts "github.com/vaudience/go-nuts"
)

// Console events emitted after every upload or delete that reached the backend.
const (
	EventUploadCompleted = "upload.completed"
	EventUploadFailed    = "upload.failed"
	EventDeleteCompleted = "delete.completed"
	EventDeleteFailed    = "delete.failed"
)

// Backend is the subset of the backend client the console operations use.
type Backend interface {
	Ping(ctx context.Context) error
	ListAudio(ctx context.Context) ([]models.AudioRecord, error)
	Environmental(ctx context.Context, audioID string) (*models.EnvironmentalBundle, error)
	Query(ctx context.Context, params models.QueryParams) (*models.QueryResult, error)
	Upload(ctx context.Context, kind models.UploadKind, filename string, content io.Reader) (*models.UploadResponse, error)
	Delete(ctx context.Context, sel models.Selection) error
}

// Service contains the backend client, session workspaces and the journal.
type Service struct {
	backend    Backend
	sessions   session.Store
	activity   repository.ActivityRepository
	monitoring *monitoring.Service
	events     *nuts.EventEmitter
}

// New creates a new service instance. activity may be nil when the journal is disabled.
func New(
	backend Backend,
	sessions session.Store,
	activity repository.ActivityRepository,
	monitoring *monitoring.Service,
) *Service {
	return &Service{
		backend:    backend,
		sessions:   sessions,
		activity:   activity,
		monitoring: monitoring,
		events:     nuts.NewEventEmitter(),
	}
}

// Validate checks if all required dependencies are initialized
func (s *Service) Validate() error {
	if s.backend == nil {
		return ErrMissingDependency("backend")
	}
	if s.sessions == nil {
		return ErrMissingDependency("sessions")
	}
	if s.monitoring == nil {
		return ErrMissingDependency("monitoring")
	}
	return nil
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}

// Sessions exposes the workspace store.
func (s *Service) Sessions() session.Store {
	return s.sessions
}

// Monitoring exposes the event counters.
func (s *Service) Monitoring() *monitoring.Service {
	return s.monitoring
}

// On registers handler for a console event. The handler receives the
// journaled entry.
func (s *Service) On(event, handlerID string, handler func(models.ActivityEntry)) {
	if _, err := s.events.On(event, handlerID, handler); err != nil {
		nuts.L.Warnf("[Service] Failed to subscribe %s to %s: %v", handlerID, event, err)
	}
}

// Health probes the backend.
func (s *Service) Health(ctx context.Context) error {
	return s.backend.Ping(ctx)
}
