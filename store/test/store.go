// Package test holds helpers shared by the store driver tests.
package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hrygo/agendabot/internal/profile"
	"github.com/hrygo/agendabot/store"
	"github.com/hrygo/agendabot/store/db"
)

// Drivers lists the drivers exercised by the store tests.
var Drivers = []string{"sqlite", "postgres"}

// GetPostgresDSN returns POSTGRES_TEST_DSN or skips the test.
func GetPostgresDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	return dsn
}

// NewTestingStore opens a migrated store for driver. SQLite databases live
// in t.TempDir(); PostgreSQL tables are truncated before use.
func NewTestingStore(ctx context.Context, t *testing.T, driver string) *store.Store {
	t.Helper()

	dir := t.TempDir()
	p := &profile.Profile{
		Mode:   "dev",
		Data:   dir,
		Driver: driver,
	}
	switch driver {
	case "sqlite":
		p.DSN = filepath.Join(dir, "agendabot_test.db")
	case "postgres":
		p.DSN = GetPostgresDSN(t)
	}

	dbDriver, err := db.NewDBDriver(p)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}
	s := store.New(dbDriver, p)
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if driver == "postgres" {
		if _, err := dbDriver.GetDB().ExecContext(ctx, "TRUNCATE user_setting"); err != nil {
			t.Fatalf("failed to truncate user_setting: %v", err)
		}
	}
	return s
}
