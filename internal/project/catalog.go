package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/PrintQuote/internal/model"
)

// catalogDoc is the standalone catalog export format.
type catalogDoc struct {
	Filaments []filamentDoc `json:"filaments"`
}

// ExportCatalog writes the filament catalog to a standalone JSON file.
// It creates parent directories if they do not exist.
func ExportCatalog(path string, catalog model.Catalog) error {
	data, err := json.MarshalIndent(catalogDoc{Filaments: newFilamentDocs(catalog)}, "", "    ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// ImportCatalog reads a catalog export (or a full configuration file) and
// merges its filaments into existing. Filaments whose id is already
// present are skipped. Filaments that fail the catalog's Add rules are
// left out and reported in rejected. The number of filaments added is
// returned.
func ImportCatalog(path string, existing model.Catalog) (merged model.Catalog, added int, rejected []error, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, 0, nil, err
	}
	_, imported, _, err := DecodeConfig(data)
	if err != nil {
		return existing, 0, nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	valid, rejected := imported.Validated()

	merged = existing.Clone()
	ids := make(map[string]bool, merged.Len())
	for _, f := range merged.Filaments {
		ids[f.ID] = true
	}

	for _, f := range valid.Filaments {
		if ids[f.ID] {
			continue
		}
		merged.Filaments = append(merged.Filaments, f)
		ids[f.ID] = true
		added++
	}
	return merged, added, rejected, nil
}
