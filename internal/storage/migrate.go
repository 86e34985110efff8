package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SchemaVersion is the state of the seed database after RunMigrations.
type SchemaVersion struct {
	Version uint
	Dirty   bool
	Applied bool // false when the database was already current
}

// RunMigrations creates the expenses table and inserts the sample rows if
// they are missing. The migrator gets its own connection; closing it must not
// close the reader's pool.
func RunMigrations(dbPath string) (SchemaVersion, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return SchemaVersion{}, fmt.Errorf("open migration database: %w", err)
	}
	defer db.Close()

	m, err := newMigrator(db)
	if err != nil {
		return SchemaVersion{}, err
	}
	defer m.Close()

	var sv SchemaVersion
	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
	case err != nil:
		return sv, fmt.Errorf("apply seed migrations: %w", err)
	default:
		sv.Applied = true
	}

	sv.Version, sv.Dirty, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return sv, fmt.Errorf("read schema version: %w", err)
	}
	return sv, nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("sqlite migrate driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
