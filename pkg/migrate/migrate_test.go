package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrate.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	if err := ValidateEmbedded(); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestSnapshotMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_storefront_snapshots.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no storefront snapshot migration found")
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS storefront_snapshots",
		"session_key VARCHAR(128) PRIMARY KEY",
		"DROP TABLE IF EXISTS storefront_snapshots",
	} {
		if !strings.Contains(string(data), sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	conn := openSQLite(t)
	sqlDB, _ := conn.DB()
	ctx := context.Background()

	if err := Run(ctx, sqlDB, "sqlite", "", "up"); err != nil {
		t.Fatalf("goose up: %v", err)
	}
	if !conn.Migrator().HasTable("storefront_snapshots") {
		t.Fatal("expected storefront_snapshots table after up")
	}
	if !conn.Migrator().HasColumn("storefront_snapshots", "order_count") {
		t.Fatal("expected order_count column after up")
	}
	version, err := Version(ctx, sqlDB, "sqlite")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if version != 20260301120500 {
		t.Fatalf("unexpected version %d", version)
	}

	if err := MigrateToVersion(ctx, sqlDB, "sqlite", "", "0"); err != nil {
		t.Fatalf("migrate to 0: %v", err)
	}
	if conn.Migrator().HasTable("storefront_snapshots") {
		t.Fatal("expected storefront_snapshots dropped after down")
	}
}

func TestGooseDialect(t *testing.T) {
	if d, err := GooseDialect("sqlite"); err != nil || d != "sqlite3" {
		t.Fatalf("sqlite mapped to %q, %v", d, err)
	}
	if d, err := GooseDialect("postgres"); err != nil || d != "postgres" {
		t.Fatalf("postgres mapped to %q, %v", d, err)
	}
	if _, err := GooseDialect("mysql"); err == nil {
		t.Fatal("expected mysql to be rejected")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	path, err := CreateSQLMigration(dir, "Add Order Notes!", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if filepath.Base(path) != "20260302100000_add_order_notes.sql" {
		t.Fatalf("unexpected filename %s", filepath.Base(path))
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration fails validation: %v", err)
	}
	if _, err := CreateSQLMigration(dir, "add order notes", now); err == nil {
		t.Fatal("expected duplicate migration to fail")
	}
	if _, err := CreateSQLMigration(dir, "!!!", now); err == nil {
		t.Fatal("expected empty sanitized name to fail")
	}
}
