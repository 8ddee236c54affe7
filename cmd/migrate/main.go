// Command migrate manages the back office database schema.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/stationery/backoffice/internal/infrastructure/config"
	"github.com/stationery/backoffice/internal/infrastructure/logger"
	"github.com/stationery/backoffice/internal/infrastructure/migration"
	"github.com/stationery/backoffice/migrations"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

const usage = `Back office database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show the current schema version
  force <version>       Mark a version as applied without running it
  drop -confirm         Drop every table
  create <name> [desc]  Create the next numbered migration file pair
  list                  List available migrations

Flags:
  -path string          Read migrations from a directory (default: embedded)
  -log-level string     debug, info, warn or error (default: info)

Database settings come from BACKOFFICE_DATABASE_* variables; a .env file is loaded when present.

Examples:
  migrate up
  migrate step -1
  migrate create add_payout_reference "Track bank reference on payouts"`

// dbCommand runs against an open migrator with the arguments after the command name
type dbCommand func(m *migration.Migrator, log *zap.Logger, args []string) error

var dbCommands = map[string]dbCommand{
	"up":   func(m *migration.Migrator, _ *zap.Logger, _ []string) error { return m.Up() },
	"down": func(m *migration.Migrator, _ *zap.Logger, _ []string) error { return m.Down() },
	"step": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		n, err := intArg(args, "step <n>")
		if err != nil {
			return err
		}
		return m.Steps(n)
	},
	"goto": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := intArg(args, "goto <version>")
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("version must not be negative")
		}
		return m.GoTo(uint(v))
	},
	"force": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := intArg(args, "force <version>")
		if err != nil {
			return err
		}
		return m.Force(v)
	},
	"version": func(m *migration.Migrator, log *zap.Logger, _ []string) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Current schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	},
	"drop": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		if !slices.Contains(args, "-confirm") && !slices.Contains(args, "--confirm") {
			return fmt.Errorf("drop removes investors, orders and payouts; rerun as 'migrate drop -confirm'")
		}
		return m.Drop()
	},
}

func main() {
	migrationsPath := flag.String("path", "", "Read migrations from this directory instead of the embedded set")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	command, rest := args[0], args[1:]

	log, err := logger.New(&logger.Config{Level: *logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	switch command {
	case "create":
		if len(rest) == 0 {
			log.Fatal("Usage: migrate create <name> [description]")
		}
		description := ""
		if len(rest) > 1 {
			description = rest[1]
		}
		mf, err := migration.CreateMigration(resolvePath(*migrationsPath), rest[0], description)
		if err != nil {
			log.Fatal("Create migration failed", zap.Error(err))
		}
		log.Info("Migration created", zap.String("up", mf.UpPath), zap.String("down", mf.DownPath))
		return
	case "list":
		list, err := migration.ListMigrations(migrations.FS)
		if *migrationsPath != "" {
			list, err = migration.ListMigrations(os.DirFS(resolvePath(*migrationsPath)))
		}
		if err != nil {
			log.Fatal("List migrations failed", zap.Error(err))
		}
		for _, name := range list {
			fmt.Println(name)
		}
		return
	}

	run, ok := dbCommands[command]
	if !ok {
		log.Error("Unknown command", zap.String("command", command))
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Load configuration failed", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Open database failed", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Database unreachable", zap.Error(err))
	}

	var m *migration.Migrator
	if *migrationsPath != "" {
		m, err = migration.New(db, resolvePath(*migrationsPath), log)
	} else {
		m, err = migration.NewFromFS(db, migrations.FS, ".", log)
	}
	if err != nil {
		log.Fatal("Create migrator failed", zap.Error(err))
	}
	defer m.Close()

	if err := run(m, log, rest); err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func intArg(args []string, form string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: migrate %s", form)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", args[0])
	}
	return n, nil
}

// resolvePath makes path absolute. An empty path means ./migrations, or the
// repository's migrations directory when run from a built binary under bin/.
func resolvePath(path string) string {
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if exe, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(exe), "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
