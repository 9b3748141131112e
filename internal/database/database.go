// FilePath: internal/database/database.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/envmon/console/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	nuts "github.com/vaudience/go-nuts"
)

// DB is the connection handle shared by the journal repositories.
type DB interface {
	Close() error
	Ping(ctx context.Context) error
	GetDB() *sqlx.DB
	Driver() string
}

// SQLDB wraps an sqlx connection to SQLite or PostgreSQL.
type SQLDB struct {
	db     *sqlx.DB
	driver string
}

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Repository represents common repository operations
type Repository interface {
	BeginTx(ctx context.Context) (Transaction, error)
}

// Open connects to the journal database described by cfg.
func Open(cfg config.JournalConfig) (DB, error) {
	switch cfg.Driver {
	case "sqlite3":
		return NewSQLiteDB(cfg.DSN)
	case "postgres":
		return NewPostgresDB(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported journal driver %q", cfg.Driver)
	}
}

// NewSQLiteDB opens (and creates) the SQLite file at path.
func NewSQLiteDB(path string) (DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening SQLite database: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	nuts.L.Infof("[SQLiteDB] Opened %s", path)
	return &SQLDB{db: db, driver: "sqlite3"}, nil
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(dsn string) (DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}

	nuts.L.Infof("[PostgresDB] Connected")
	return &SQLDB{db: db, driver: "postgres"}, nil
}

func (d *SQLDB) Close() error {
	return d.db.Close()
}

func (d *SQLDB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *SQLDB) GetDB() *sqlx.DB {
	return d.db
}

func (d *SQLDB) Driver() string {
	return d.driver
}
