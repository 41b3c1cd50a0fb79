package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PrintQuote/internal/importer"
	"github.com/piwi3910/PrintQuote/internal/model"
)

func TestExportCatalogXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	catalog := model.Catalog{Filaments: testFilaments()}

	if err := ExportCatalogXLSX(path, catalog); err != nil {
		t.Fatalf("ExportCatalogXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot open exported workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Filaments")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Brand" || rows[0][3] != "ID" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[2][0] != "Esun" || rows[2][2] != "21000.5" || rows[2][3] != "esun_petg_1a2b3c4d" {
		t.Errorf("unexpected row %v", rows[2])
	}
}

func TestExportCatalogXLSX_ImportsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	if err := ExportCatalogXLSX(path, model.Catalog{Filaments: testFilaments()}); err != nil {
		t.Fatal(err)
	}

	result := importer.ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected import errors: %v", result.Errors)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0].Brand != "Grilon3" || result.Rows[0].Type != "PLA" || result.Rows[0].Price != "18500" {
		t.Errorf("unexpected row %+v", result.Rows[0])
	}
}
