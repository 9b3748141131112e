// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envmon/console/api"
	"github.com/envmon/console/internal/backend"
	"github.com/envmon/console/internal/cleanup"
	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/database"
	"github.com/envmon/console/internal/models"
	"github.com/envmon/console/internal/monitoring"
	"github.com/envmon/console/internal/repository"
	"github.com/envmon/console/internal/repository/journal"
	"github.com/envmon/console/internal/service"
	"github.com/envmon/console/internal/session"
	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	service    *service.Service
	monitoring *monitoring.Service
	cleanup    *cleanup.CleanupService
	db         database.DB
	sessions   session.Store
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	if err := s.initialize(); err != nil {
		return err
	}
	defer s.close()

	// Set up event handlers
	s.setupEventHandlers()

	if err := s.cleanup.Start(s.config.Journal.PruneSchedule); err != nil {
		return fmt.Errorf("error scheduling journal pruning: %w", err)
	}

	s.srv.Handler = s.handler()

	errCh := make(chan error, 1)
	go func() {
		nuts.L.Infof("[Server] Starting server on %s (backend %s)", s.srv.Addr, s.config.Backend.BaseURL)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return s.waitForShutdown(errCh)
}

// handler wraps the router with access logging, panic recovery and compression.
func (s *Server) handler() http.Handler {
	router := api.NewRouter(s.service, s.config)
	var h http.Handler = handlers.CompressHandler(router)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return handlers.CombinedLoggingHandler(os.Stdout, h)
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("error starting server: %w", err)
	}

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	s.cleanup.Stop(ctx)
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupEventHandlers() {
	s.service.On(service.EventUploadCompleted, "server.log", func(e models.ActivityEntry) {
		nuts.L.Infof("[Upload] %s %s uploaded (%s)", e.Kind, e.Target, e.RequestID)
	})
	s.service.On(service.EventUploadFailed, "server.log", func(e models.ActivityEntry) {
		nuts.L.Warnf("[Upload] %s %s failed: %s (%s)", e.Kind, e.Target, e.Detail, e.RequestID)
	})
	s.service.On(service.EventDeleteCompleted, "server.log", func(e models.ActivityEntry) {
		nuts.L.Infof("[Delete] %s rows %s deleted (%s)", e.Kind, e.Target, e.RequestID)
	})
	s.service.On(service.EventDeleteFailed, "server.log", func(e models.ActivityEntry) {
		nuts.L.Warnf("[Delete] %s rows %s: %s (%s)", e.Kind, e.Target, e.Detail, e.RequestID)
	})

	s.cleanup.OnCleanup(cleanup.EventJournalPruned, func(count string) {
		nuts.L.Infof("[Cleanup] %s journal entries older than %s removed", count, s.config.Journal.Retention)
		s.monitoring.RecordEvent(cleanup.EventJournalPruned, map[string]string{"count": count})
	})
}

// initialize creates the backend client, session store, journal and service.
func (s *Server) initialize() error {
	nuts.SetLoglevel(s.config.Monitoring.LoggerLevel(), "envmon-console", false, "")

	sessions, err := session.New(s.config.Session)
	if err != nil {
		return fmt.Errorf("error creating session store: %w", err)
	}
	s.sessions = sessions

	var activity repository.ActivityRepository
	if s.config.Journal.Driver != "" {
		repo, err := s.initJournal()
		if err != nil {
			sessions.Close()
			return err
		}
		activity = repo
	} else {
		nuts.L.Warnf("[Server] Activity journal disabled")
	}

	s.monitoring = monitoring.NewService(monitoring.Config{})
	s.service = service.New(backend.New(s.config.Backend), sessions, activity, s.monitoring)
	if err := s.service.Validate(); err != nil {
		s.close()
		return err
	}
	s.cleanup = cleanup.New(activity, s.config.Journal.Retention)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.service.Health(ctx); err != nil {
		// the console still serves its pages and reports the failure inline
		nuts.L.Warnf("[Server] Backend %s not reachable: %v", s.config.Backend.BaseURL, err)
	}
	return nil
}

func (s *Server) initJournal() (*journal.ActivityRepo, error) {
	db, err := database.Open(s.config.Journal)
	if err != nil {
		return nil, fmt.Errorf("error opening journal: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging journal database: %w", err)
	}
	repo := journal.NewActivityRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating journal: %w", err)
	}
	s.db = db
	nuts.L.Infof("[Server] Activity journal ready (%s)", db.Driver())
	return repo, nil
}

func (s *Server) close() {
	if s.sessions != nil {
		if err := s.sessions.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing session store: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing journal: %v", err)
		}
	}
}
