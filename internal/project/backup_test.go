package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PrintQuote/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	settings := model.DefaultSettings()
	if err := settings.Set(model.KeyPowerDraw, "220"); err != nil {
		t.Fatal(err)
	}
	catalog := model.NewCatalog()
	rec, err := catalog.Add("Grilon3", "PLA", "18500")
	if err != nil {
		t.Fatal(err)
	}

	if err := ExportAllData(path, settings, catalog); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Settings.Get(model.KeyPowerDraw) != "220" {
		t.Errorf("expected power draw 220, got %s", backup.Settings.Get(model.KeyPowerDraw))
	}
	if backup.Catalog.Len() != 1 || backup.Catalog.Filaments[0].ID != rec.ID {
		t.Errorf("catalog not restored: %+v", backup.Catalog.Filaments)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	data := []byte(`{"settings":{"consumo_w":"100"},"filaments":[]}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "backup.json")

	if err := ExportAllData(path, model.DefaultSettings(), model.NewCatalog()); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataBackfillsSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","settings":{"precio_kwh":"150"}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Settings.Get(model.KeyElectricityPrice) != "150" {
		t.Errorf("expected 150, got %s", backup.Settings.Get(model.KeyElectricityPrice))
	}
	if backup.Settings.WindowGeometry != model.DefaultWindowGeometry {
		t.Errorf("expected default geometry, got %s", backup.Settings.WindowGeometry)
	}
	if backup.Catalog.Filaments == nil {
		t.Error("catalog should not be nil after import")
	}
}
