package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintQuote/internal/model"
)

func TestExportFilamentLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportFilamentLabels(path, testFilaments()); err != nil {
		t.Fatalf("ExportFilamentLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("labels PDF was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("labels PDF is empty")
	}
}

func TestExportFilamentLabels_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := ExportFilamentLabels(path, nil); err == nil {
		t.Error("expected error for empty filament list")
	}
}

func TestExportFilamentLabels_ManyFilaments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	// More than one page of labels, with duplicate brands.
	var filaments []model.FilamentRecord
	for i := 0; i < 45; i++ {
		filaments = append(filaments, model.FilamentRecord{
			ID:         fmt.Sprintf("acme_pla_%08d", i),
			Brand:      "Acme Filaments With A Very Long Brand Name",
			Type:       model.FilamentPLA,
			PricePerKg: decimal.NewFromInt(int64(15000 + i)),
		})
	}

	if err := ExportFilamentLabels(path, filaments); err != nil {
		t.Fatalf("ExportFilamentLabels returned error: %v", err)
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(testFilaments())

	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}
	if labels[0].ID != "grilon3_pla_0a1b2c3d" || labels[0].Brand != "Grilon3" || labels[0].Type != "PLA" {
		t.Errorf("unexpected first label %+v", labels[0])
	}
	if labels[1].PricePerKg != "$ 21,000.50" {
		t.Errorf("unexpected price %q", labels[1].PricePerKg)
	}
}

func TestLabelInfo_JSONKeys(t *testing.T) {
	data, err := json.Marshal(CollectLabelInfos(testFilaments())[0])
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "brand", "type", "price_kg"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
}
