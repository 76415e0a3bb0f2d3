package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose uses to track applied migrations.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsDir is the directory inside the embedded filesystem holding the SQL files.
const MigrationsDir = "migrations"

// ConfigureGoose points goose at the embedded migrations.
func ConfigureGoose(logger goose.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(MigrationTableName)
	if logger != nil {
		goose.SetLogger(logger)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// Migrate runs a goose command ("up", "down", "reset", "status", "version")
// against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string) error {
	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, MigrationsDir)
	case "down":
		err = goose.DownContext(ctx, db, MigrationsDir)
	case "reset":
		err = goose.ResetContext(ctx, db, MigrationsDir)
	case "status":
		err = goose.StatusContext(ctx, db, MigrationsDir)
	case "version":
		err = goose.VersionContext(ctx, db, MigrationsDir)
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, reset, status, or version)",
			command,
		)
	}
	if err != nil {
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}
	return nil
}

// CollectMigrations returns the embedded migrations known to goose.
func CollectMigrations() (goose.Migrations, error) {
	goose.SetBaseFS(migrationsFS)
	return goose.CollectMigrations(MigrationsDir, 0, goose.MaxVersion)
}
