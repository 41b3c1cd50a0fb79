package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PrintQuote/internal/model"
)

// catalogHeaders are recognized by the importer, so an exported sheet can
// be imported again.
var catalogHeaders = []string{"Brand", "Type", "Price per kg", "ID"}

// ExportCatalogXLSX writes the catalog to a single-sheet workbook. Prices
// are stored as numbers.
func ExportCatalogXLSX(path string, catalog model.Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Filaments"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range catalogHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "D1", headerStyle)
	}

	for r, fil := range catalog.Filaments {
		row := r + 2
		values := []interface{}{fil.Brand, string(fil.Type), fil.PricePerKg.InexactFloat64(), fil.ID}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "C", "C", 14)
	_ = f.SetColWidth(sheet, "D", "D", 32)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
