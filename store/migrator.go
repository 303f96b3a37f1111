package store

import (
	"context"
	"embed"
	"log/slog"
	"path/filepath"

	"github.com/pkg/errors"
)

// Fresh databases are initialized from migration/{driver}/LATEST.sql.
//
//go:embed migration
var migrationFS embed.FS

// LatestSchemaFileName is the name of the latest schema file.
const LatestSchemaFileName = "LATEST.sql"

// Migrate applies the latest schema when the database is empty. It is safe
// to call on every start.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check database initialization")
	}
	if initialized {
		return nil
	}

	filePath := filepath.ToSlash(filepath.Join("migration", s.profile.Driver, LatestSchemaFileName))
	schema, err := migrationFS.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read schema file %s", filePath)
	}
	if _, err := s.driver.GetDB().ExecContext(ctx, string(schema)); err != nil {
		return errors.Wrapf(err, "failed to apply schema %s", filePath)
	}
	slog.Info("database schema initialized", slog.String("driver", s.profile.Driver))
	return nil
}
