// Package project persists PrintQuote settings and the filament catalog.
package project

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/piwi3910/PrintQuote/internal/model"
)

const (
	// AppDirName is the per-user application data subdirectory.
	AppDirName = "Cotizador3D"
	// ConfigFileName is the name of the settings and catalog file.
	ConfigFileName = "config_impresion3d.json"
)

// DefaultConfigDir returns the per-user data directory for the application.
// It is %LOCALAPPDATA%\Cotizador3D on Windows and <user config dir>/Cotizador3D
// elsewhere, falling back to the home directory and then the working directory.
func DefaultConfigDir() string {
	base := os.Getenv("LOCALAPPDATA")
	if base == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			base = dir
		} else if home, err := os.UserHomeDir(); err == nil {
			base = home
		} else {
			base = "."
		}
	}
	return filepath.Join(base, AppDirName)
}

// DefaultConfigPath returns the default path of the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFileName)
}

// ConfigStore loads and saves the single configuration document.
type ConfigStore struct {
	path string
	log  *zap.Logger
}

// NewConfigStore returns a store for the file at path. A nil logger
// discards log output.
func NewConfigStore(path string, log *zap.Logger) *ConfigStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConfigStore{path: path, log: log.With(zap.String("config", path))}
}

// Path returns the file the store reads and writes.
func (s *ConfigStore) Path() string {
	return s.path
}

// Read returns the stored settings and catalog. A missing or empty file
// yields the defaults and no error. An unreadable or malformed file yields
// the defaults together with a *model.ConfigLoadError.
func (s *ConfigStore) Read() (model.Settings, model.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultSettings(), model.NewCatalog(), nil
		}
		return model.DefaultSettings(), model.NewCatalog(), &model.ConfigLoadError{Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return model.DefaultSettings(), model.NewCatalog(), nil
	}

	settings, catalog, warnings, err := DecodeConfig(data)
	if err != nil {
		return model.DefaultSettings(), model.NewCatalog(), &model.ConfigLoadError{Path: s.path, Err: err}
	}
	for _, w := range warnings {
		s.log.Warn("configuration value replaced", zap.String("detail", w))
	}
	return settings, catalog, nil
}

// Load is Read with the error recovered: a corrupt file is logged and
// the defaults are returned.
func (s *ConfigStore) Load() (model.Settings, model.Catalog) {
	settings, catalog, err := s.Read()
	if err != nil {
		s.log.Warn("configuration unreadable, using defaults", zap.Error(err))
		return settings, catalog
	}
	s.log.Debug("configuration loaded", zap.Int("filaments", catalog.Len()))
	return settings, catalog
}

// Save writes settings and catalog. The document is written to a
// temporary file in the same directory and renamed over the old one.
// Failures are logged and returned as *model.ConfigSaveError.
func (s *ConfigStore) Save(settings model.Settings, catalog model.Catalog) error {
	data, err := EncodeConfig(settings, catalog)
	if err == nil {
		err = writeFileAtomic(s.path, data)
	}
	if err != nil {
		saveErr := &model.ConfigSaveError{Path: s.path, Err: err}
		s.log.Error("failed to save configuration", zap.Error(err))
		return saveErr
	}
	s.log.Debug("configuration saved", zap.Int("filaments", catalog.Len()))
	return nil
}

// writeFileAtomic creates missing parent directories, writes data to a
// temporary sibling of path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
