// Package session holds the in-memory settings and filament catalog for
// one running instance and routes every change through validation and
// persistence.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/PrintQuote/internal/engine"
	"github.com/piwi3910/PrintQuote/internal/importer"
	"github.com/piwi3910/PrintQuote/internal/model"
	"github.com/piwi3910/PrintQuote/internal/project"
)

// Store loads and persists the session state.
type Store interface {
	Load() (model.Settings, model.Catalog)
	Save(model.Settings, model.Catalog) error
}

// Session is the single owner of Settings and Catalog. It is not safe for
// concurrent use; all calls are expected on the UI goroutine.
type Session struct {
	settings model.Settings
	catalog  model.Catalog
	store    Store
	log      *zap.Logger

	lastSaveErr error
	onSaveError func(error)
}

// New loads the state from store.
func New(store Store, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	settings, catalog := store.Load()
	return &Session{
		settings: settings,
		catalog:  catalog,
		store:    store,
		log:      log,
	}
}

// SetSaveErrorHandler registers fn to be told about failed saves, e.g. to
// show a notification. Saves never fail the calling operation.
func (s *Session) SetSaveErrorHandler(fn func(error)) {
	s.onSaveError = fn
}

// LastSaveError returns the error of the most recent save, or nil.
func (s *Session) LastSaveError() error {
	return s.lastSaveErr
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() model.Settings {
	return s.settings
}

// Filaments returns a copy of the catalog records in order.
func (s *Session) Filaments() []model.FilamentRecord {
	return s.catalog.Clone().Filaments
}

// Catalog returns a copy of the catalog.
func (s *Session) Catalog() model.Catalog {
	return s.catalog.Clone()
}

// Filament returns the record with the given id.
func (s *Session) Filament(id string) (model.FilamentRecord, bool) {
	f := s.catalog.FindByID(id)
	if f == nil {
		return model.FilamentRecord{}, false
	}
	return *f, true
}

// persist saves the current state. A failure is recorded and reported to
// the save error handler but not returned.
func (s *Session) persist() {
	err := s.store.Save(s.settings, s.catalog)
	s.lastSaveErr = err
	if err != nil && s.onSaveError != nil {
		s.onSaveError(err)
	}
}

// OnSettingsChanged validates and stores one settings field, then saves.
// A rejected value returns a *model.ValidationError and nothing changes.
func (s *Session) OnSettingsChanged(key model.SettingKey, raw string) error {
	next := s.settings
	if err := next.Set(key, raw); err != nil {
		return err
	}
	if next.Get(key) == s.settings.Get(key) {
		return nil
	}
	s.settings = next
	s.log.Debug("setting changed", zap.String("key", string(key)), zap.String("value", next.Get(key)))
	s.persist()
	return nil
}

// SetWindowGeometry records the window size and saves.
func (s *Session) SetWindowGeometry(width, height int) error {
	return s.OnSettingsChanged(model.KeyWindowGeometry, model.FormatGeometry(width, height))
}

// AddFilament validates and appends a filament, then saves.
func (s *Session) AddFilament(brand, ftype, price string) (model.FilamentRecord, error) {
	rec, err := s.catalog.Add(brand, ftype, price)
	if err != nil {
		return model.FilamentRecord{}, err
	}
	s.log.Info("filament added", zap.String("id", rec.ID), zap.String("name", rec.DisplayName()))
	s.persist()
	return rec, nil
}

// UpdateFilament validates and replaces a filament's fields, then saves.
func (s *Session) UpdateFilament(id, brand, ftype, price string) (model.FilamentRecord, error) {
	rec, err := s.catalog.Update(id, brand, ftype, price)
	if err != nil {
		return model.FilamentRecord{}, err
	}
	s.log.Info("filament updated", zap.String("id", rec.ID), zap.String("name", rec.DisplayName()))
	s.persist()
	return rec, nil
}

// RemoveFilament deletes a filament by id and saves. Removing an unknown
// id does nothing.
func (s *Session) RemoveFilament(id string) {
	if s.catalog.Remove(id) {
		s.log.Info("filament removed", zap.String("id", id))
	}
	s.persist()
}

// ImportFilaments adds rows read by the importer using the same rules as
// AddFilament and saves once. Rejected rows are returned as errors naming
// their source line.
func (s *Session) ImportFilaments(rows []importer.FilamentRow) (int, []error) {
	var errs []error
	added := 0
	for _, row := range rows {
		if _, err := s.catalog.Add(row.Brand, row.Type, row.Price); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", row.Source, err))
			continue
		}
		added++
	}
	s.log.Info("filaments imported", zap.Int("added", added), zap.Int("rejected", len(errs)))
	if added > 0 {
		s.persist()
	}
	return added, errs
}

// ImportCatalog merges the filaments of a catalog export at path and saves.
// Records that fail the AddFilament rules are skipped and returned as
// errors, like rows rejected by ImportFilaments.
func (s *Session) ImportCatalog(path string) (int, []error, error) {
	merged, added, rejected, err := project.ImportCatalog(path, s.catalog)
	if err != nil {
		return 0, nil, err
	}
	s.log.Info("catalog imported", zap.String("path", path),
		zap.Int("added", added), zap.Int("rejected", len(rejected)))
	if added > 0 {
		s.catalog = merged
		s.persist()
	}
	return added, rejected, nil
}

// RestoreBackup replaces settings and catalog and saves. Settings that
// violate a constraint are rejected and nothing changes. Filaments that
// fail the AddFilament rules are left out and returned.
func (s *Session) RestoreBackup(settings model.Settings, catalog model.Catalog) ([]error, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	valid, rejected := catalog.Validated()
	valid.EnsureUniqueIDs()
	s.settings = settings
	s.catalog = valid
	s.log.Info("backup restored", zap.Int("filaments", s.catalog.Len()), zap.Int("rejected", len(rejected)))
	s.persist()
	return rejected, nil
}

// resolve parses the form and looks up its filament. An unknown or empty
// filament id leaves the request without a filament, which the engine
// rejects.
func (s *Session) resolve(form model.QuoteForm) (model.QuoteRequest, error) {
	var filament *model.FilamentRecord
	if f, ok := s.Filament(form.FilamentID); ok {
		filament = &f
	}
	return model.ParseQuoteForm(form, filament)
}

// Quote prices the job described by form.
func (s *Session) Quote(form model.QuoteForm) (model.QuoteResult, error) {
	req, err := s.resolve(form)
	if err != nil {
		return model.QuoteResult{}, err
	}
	return engine.Compute(s.settings, req)
}

// Compare prices the job described by form with every catalog filament.
func (s *Session) Compare(form model.QuoteForm) ([]engine.FilamentComparison, error) {
	req, err := s.resolve(form)
	if err != nil {
		return nil, err
	}
	return engine.CompareFilaments(s.settings, s.catalog.Filaments, req)
}

// Close saves the state one last time. The returned error is informative
// only.
func (s *Session) Close() error {
	s.persist()
	if s.lastSaveErr != nil {
		s.log.Warn("final save failed", zap.Error(s.lastSaveErr))
	}
	return s.lastSaveErr
}
