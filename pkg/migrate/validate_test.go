package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const validSQL = "-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n"

func TestValidateDirAcceptsWellFormedMigrations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20250101120000_create_users.sql", validSQL)
	writeFile(t, dir, "20250102120000_create_stock_items.sql", validSQL)

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("expected valid dir, got: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "create_users.sql", validSQL)

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected filename error")
	}
}

func TestValidateDirRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20250101120000_create_users.sql", validSQL)
	writeFile(t, dir, "20250101120000_create_stock.sql", validSQL)

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate version error, got: %v", err)
	}
}

func TestValidateDirRejectsMissingGooseHeaders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20250101120000_create_users.sql", "-- +goose Up\nSELECT 1;\n")

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "goose Down") {
		t.Fatalf("expected missing Down error, got: %v", err)
	}
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations should validate: %v", err)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Maintenance Notes!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasSuffix(base, "_add_maintenance_notes.sql") {
		t.Fatalf("unexpected filename: %s", base)
	}

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	if _, err := CreateSQLMigration(t.TempDir(), ""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := CreateSQLMigration(t.TempDir(), "!!!"); err == nil {
		t.Fatal("expected error for unsanitizable name")
	}
}
