// Package migration applies and authors the versioned SQL schema.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Migrator wraps golang-migrate for a PostgreSQL database
type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New reads migrations from a directory on disk
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	return open(db, logger, func(driver database.Driver) (*migrate.Migrate, error) {
		return migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	})
}

// NewFromFS reads migrations embedded in the binary; dir is "." for the root of fsys
func NewFromFS(db *sql.DB, fsys fs.FS, dir string, logger *zap.Logger) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return open(db, logger, func(driver database.Driver) (*migrate.Migrate, error) {
		return migrate.NewWithInstance("iofs", src, "postgres", driver)
	})
}

func open(db *sql.DB, logger *zap.Logger, build func(database.Driver) (*migrate.Migrate, error)) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	m, err := build(driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{m: m, logger: logger.Named("migrate")}, nil
}

// apply runs one golang-migrate operation. ErrNoChange is success.
func (mg *Migrator) apply(op string, fn func() error, fields ...zap.Field) error {
	mg.logger.Info("Migration "+op+" started", fields...)
	err := fn()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("Schema already up to date", zap.String("op", op))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s: %w", op, err)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	mg.logger.Info("Migration "+op+" finished", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Up applies every pending migration
func (mg *Migrator) Up() error {
	return mg.apply("up", mg.m.Up)
}

// Down rolls everything back
func (mg *Migrator) Down() error {
	return mg.apply("down", mg.m.Down)
}

// Steps moves n migrations; negative n rolls back
func (mg *Migrator) Steps(n int) error {
	return mg.apply("steps", func() error { return mg.m.Steps(n) }, zap.Int("steps", n))
}

func (mg *Migrator) GoTo(version uint) error {
	return mg.apply("goto", func() error { return mg.m.Migrate(version) }, zap.Uint("target", version))
}

// Version is 0 when nothing has been applied
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied without running anything. It clears the
// dirty flag after a failed migration has been repaired by hand.
func (mg *Migrator) Force(version int) error {
	mg.logger.Warn("Forcing schema version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every table, payout history included
func (mg *Migrator) Drop() error {
	mg.logger.Warn("Dropping all tables")
	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}
