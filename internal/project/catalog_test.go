package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PrintQuote/internal/model"
)

func TestExportAndImportCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")

	source := model.NewCatalog()
	a, _ := source.Add("Grilon3", "PLA", "18500")
	b, _ := source.Add("Print A Lot", "PETG", "21000")
	if err := ExportCatalog(path, source); err != nil {
		t.Fatalf("ExportCatalog failed: %v", err)
	}

	existing := model.NewCatalog()
	existing.Filaments = append(existing.Filaments, a)
	c, _ := existing.Add("Local", "TPU", "30000")

	merged, added, rejected, err := ImportCatalog(path, existing)
	if err != nil {
		t.Fatalf("ImportCatalog failed: %v", err)
	}
	if added != 1 {
		t.Errorf("expected 1 filament added, got %d", added)
	}
	if len(rejected) != 0 {
		t.Errorf("expected no rejected filaments, got %v", rejected)
	}

	var ids []string
	for _, f := range merged.Filaments {
		ids = append(ids, f.ID)
	}
	want := []string{a.ID, c.ID, b.ID}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], ids[i])
		}
	}
	if existing.Len() != 2 {
		t.Error("ImportCatalog must not modify the existing catalog")
	}
}

func TestImportCatalogMissingFile(t *testing.T) {
	existing := model.NewCatalog()
	got, added, _, err := ImportCatalog(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if added != 0 || got.Len() != 0 {
		t.Error("existing catalog should be returned unchanged")
	}
}

func TestImportCatalogInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("[1,2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := ImportCatalog(path, model.NewCatalog()); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportCatalogRejectsInvalidFilaments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"filaments": [
		{"id": "x1", "brand": "", "type": "Wood", "price_kg": "abc"},
		{"id": "x2", "brand": "Esun", "type": "PETG", "price_kg": 0},
		{"id": "x3", "brand": "Esun", "type": "petg", "price_kg": "21000,5"}
	]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	merged, added, rejected, err := ImportCatalog(path, model.NewCatalog())
	if err != nil {
		t.Fatalf("ImportCatalog failed: %v", err)
	}
	if added != 1 || merged.Len() != 1 {
		t.Fatalf("expected only x3 to be added, got %d: %+v", added, merged.Filaments)
	}
	got := merged.Filaments[0]
	if got.ID != "x3" || got.Type != model.FilamentPETG || got.PricePerKg.String() != "21000.5" {
		t.Errorf("unexpected record %+v", got)
	}
	if len(rejected) != 2 {
		t.Fatalf("expected 2 rejected filaments, got %v", rejected)
	}
	for _, e := range rejected {
		if !errors.Is(e, model.ErrValidation) {
			t.Errorf("expected a validation error, got %v", e)
		}
	}
}
