package persistence

import (
	"context"
	"log/slog"

	"miniblog/internal/core"
)

// MigrationUpRunner applies every pending migration and reports the schema version reached.
type MigrationUpRunner struct {
	Logger   *slog.Logger
	Migrator core.Migrator
}

func (m *MigrationUpRunner) Run(ctx context.Context) error {
	return migrateAndReport(ctx, m.Logger, m.Migrator, m.Migrator.Up)
}

// MigrationDownRunner rolls back the latest migration. Rolling back an empty schema is a no-op.
type MigrationDownRunner struct {
	Logger   *slog.Logger
	Migrator core.Migrator
}

func (m *MigrationDownRunner) Run(ctx context.Context) error {
	version, err := m.Migrator.Version(ctx)
	if err != nil {
		return err
	}
	if version == 0 {
		m.Logger.Info("Nothing to roll back, the schema is empty")
		return nil
	}

	return migrateAndReport(ctx, m.Logger, m.Migrator, m.Migrator.Down)
}

func migrateAndReport(ctx context.Context, logger *slog.Logger, migrator core.Migrator, step func(context.Context) error) error {
	before, err := migrator.Version(ctx)
	if err != nil {
		return err
	}

	if err := step(ctx); err != nil {
		return err
	}

	after, err := migrator.Version(ctx)
	if err != nil {
		return err
	}

	logger.Info("Schema version", "from", before, "to", after, "changed", after != before)
	return nil
}
