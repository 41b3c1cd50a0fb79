package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/PrintQuote/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// backupDoc is the top-level structure of a backup file: the configuration
// document plus version and timestamp.
type backupDoc struct {
	Version   string        `json:"version"`
	CreatedAt string        `json:"created_at"`
	Settings  settingsDoc   `json:"settings"`
	Filaments []filamentDoc `json:"filaments"`
}

// BackupData is the decoded content of a backup file.
type BackupData struct {
	Version   string
	CreatedAt string
	Settings  model.Settings
	Catalog   model.Catalog
}

// ExportAllData writes settings and catalog to a single backup file at
// exportPath.
func ExportAllData(exportPath string, settings model.Settings, catalog model.Catalog) error {
	backup := backupDoc{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Settings:  newSettingsDoc(settings),
		Filaments: newFilamentDocs(catalog),
	}
	data, err := json.MarshalIndent(backup, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}
	if err := writeFileAtomic(exportPath, data); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup file. The caller is responsible for applying
// the imported settings and catalog.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var header struct {
		Version   string `json:"version"`
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if header.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	settings, catalog, _, err := DecodeConfig(data)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	return BackupData{
		Version:   header.Version,
		CreatedAt: header.CreatedAt,
		Settings:  settings,
		Catalog:   catalog,
	}, nil
}
