// Package storage reads the seed collection from a SQLite database. Rows are
// loaded once at startup; review decisions are never written back.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"reviewdesk/internal/core"
	applog "reviewdesk/internal/log"
	"reviewdesk/internal/seed"
)

const listExpenses = `
SELECT id, employee_name, category, description, amount_cents, expense_date, status, COALESCE(approver_comment, '')
FROM expenses
ORDER BY position, id`

type SQLiteRepository struct {
	db     *sql.DB
	logger *applog.Logger
}

var _ seed.Reader = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens dbPath, creating it and applying migrations when
// needed.
func NewSQLiteRepository(dbPath string, logger *applog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	sv, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger = logger.WithComponent(applog.ComponentSeed)
	logger.Info("Seed database ready",
		"path", dbPath,
		"schema_version", sv.Version,
		"migrated", sv.Applied)
	return &SQLiteRepository{db: db, logger: logger}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadExpenses returns every row in position order.
func (r *SQLiteRepository) LoadExpenses(ctx context.Context) (core.Expenses, error) {
	rows, err := r.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out core.Expenses
	for rows.Next() {
		var (
			e      core.Expense
			date   string
			status string
		)
		if err := rows.Scan(&e.ID, &e.EmployeeName, &e.Category, &e.Description, &e.Amount.Cents, &date, &status, &e.ApproverComment); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("expense %q date %q: %w", e.ID, date, err)
		}
		if e.Status, err = core.ParseStatus(status); err != nil {
			return nil, fmt.Errorf("expense %q: %w", e.ID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Loaded seed from sqlite", "count", len(out))
	return out, nil
}
