package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"

	"github.com/phrazzld/wordsplit/internal/platform/postgres"
)

// handleMigrations runs a single goose command against db.
func handleMigrations(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	if !slices.Contains(postgres.MigrationCommands, command) {
		return fmt.Errorf("unknown migration command %q, expected one of %v", command, postgres.MigrationCommands)
	}

	log.Info("executing migrations", "command", command)
	if err := postgres.Migrate(ctx, db, command); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	log.Info("migrations finished", "command", command)
	return nil
}
