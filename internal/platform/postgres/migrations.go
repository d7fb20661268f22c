package postgres

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationTableName is the table goose uses to track applied migrations.
const MigrationTableName = "schema_migrations"

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level without exiting; the error propagates to the
// caller, which decides how to terminate.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// RunMigrations applies all pending migrations from the embedded migration
// set. It is safe to call on every startup; goose skips migrations that have
// already been applied.
func RunMigrations(db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "migrations"))

	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(MigrationTableName)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	log.Info("applying database migrations")
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	log.Info("database migrations applied", slog.Int64("version", version))
	return nil
}
