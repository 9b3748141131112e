// FilePath: internal/repository/journal/journal.baserepo.go
package journal

import (
	"context"
	"database/sql"
	"strings"

	"github.com/envmon/console/internal/database"
	"github.com/envmon/console/internal/errors"
)

// BaseRepo holds the shared connection. Queries are written with ? bind
// variables and rebound for the active driver.
type BaseRepo struct {
	db database.DB
}

func (r *BaseRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to begin transaction", err)
	}
	return tx, nil
}

func (r *BaseRepo) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	result, err := r.db.GetDB().ExecContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to execute query", err)
	}
	return result, nil
}

func (r *BaseRepo) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return errors.NewDatabaseError("failed to ping database", err)
	}
	return nil
}

func (r *BaseRepo) rebind(query string) string {
	return r.db.GetDB().Rebind(query)
}

// splitStatements cuts a multi-statement script at semicolons.
func splitStatements(script string) []string {
	var stmts []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
