package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FilamentType is the material family of a filament.
type FilamentType string

const (
	FilamentPLA    FilamentType = "PLA"
	FilamentPETG   FilamentType = "PETG"
	FilamentTPU    FilamentType = "TPU"
	FilamentABS    FilamentType = "ABS"
	FilamentASA    FilamentType = "ASA"
	FilamentPLACF  FilamentType = "PLA-CF"
	FilamentPETGCF FilamentType = "PETG-CF"
	FilamentNylon  FilamentType = "Nylon"
)

// FilamentTypes returns the supported types in display order.
func FilamentTypes() []FilamentType {
	return []FilamentType{
		FilamentPLA, FilamentPETG, FilamentTPU, FilamentABS,
		FilamentASA, FilamentPLACF, FilamentPETGCF, FilamentNylon,
	}
}

// FilamentTypeOptions returns the type names for UI dropdowns.
func FilamentTypeOptions() []string {
	types := FilamentTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// ParseFilamentType resolves a type name. Matching ignores case and
// surrounding spaces but the canonical spelling is returned.
func ParseFilamentType(s string) (FilamentType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range FilamentTypes() {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// FilamentRecord is one purchasable filament.
type FilamentRecord struct {
	ID         string
	Brand      string
	Type       FilamentType
	PricePerKg decimal.Decimal
}

// DisplayName returns the "{brand} ({type})" label shown in selectors.
// It is not unique; use ID to identify a record.
func (f FilamentRecord) DisplayName() string {
	return fmt.Sprintf("%s (%s)", f.Brand, f.Type)
}

// Catalog is the ordered collection of filament records. Order is
// insertion order.
type Catalog struct {
	Filaments []FilamentRecord
}

// NewCatalog returns an empty catalog.
func NewCatalog() Catalog {
	return Catalog{Filaments: []FilamentRecord{}}
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	cp := make([]FilamentRecord, len(c.Filaments))
	copy(cp, c.Filaments)
	return Catalog{Filaments: cp}
}

// Len returns the number of filaments.
func (c Catalog) Len() int {
	return len(c.Filaments)
}

// validateFilament checks the user-entered fields shared by Add and Update.
func validateFilament(brand, ftype, price string) (string, FilamentType, decimal.Decimal, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return "", "", decimal.Zero, newValidationError("brand", "must not be empty")
	}
	t, ok := ParseFilamentType(ftype)
	if !ok {
		return "", "", decimal.Zero, newValidationError("type", "%q is not one of %s", ftype, strings.Join(FilamentTypeOptions(), ", "))
	}
	if strings.TrimSpace(price) == "" {
		return "", "", decimal.Zero, newValidationError("price_per_kg", "must not be empty")
	}
	p, err := ParseDecimal(price)
	if err != nil {
		return "", "", decimal.Zero, newValidationError("price_per_kg", "%q is not a valid number", price)
	}
	if !p.IsPositive() {
		return "", "", decimal.Zero, newValidationError("price_per_kg", "must be greater than zero")
	}
	return brand, t, p, nil
}

// Add validates the fields and appends a new record with a fresh id.
// A rejected add leaves the catalog unchanged.
func (c *Catalog) Add(brand, ftype, price string) (FilamentRecord, error) {
	b, t, p, err := validateFilament(brand, ftype, price)
	if err != nil {
		return FilamentRecord{}, err
	}
	rec := FilamentRecord{
		ID:         c.newID(b, t),
		Brand:      b,
		Type:       t,
		PricePerKg: p,
	}
	c.Filaments = append(c.Filaments, rec)
	return rec, nil
}

// Update replaces the fields of the record with the given id in place,
// keeping its id and position.
func (c *Catalog) Update(id, brand, ftype, price string) (FilamentRecord, error) {
	b, t, p, err := validateFilament(brand, ftype, price)
	if err != nil {
		return FilamentRecord{}, err
	}
	rec := c.FindByID(id)
	if rec == nil {
		return FilamentRecord{}, fmt.Errorf("update %q: %w", id, ErrFilamentNotFound)
	}
	rec.Brand = b
	rec.Type = t
	rec.PricePerKg = p
	return *rec, nil
}

// Remove deletes the record with the given id. It reports whether a record
// was removed; an unknown id is not an error.
func (c *Catalog) Remove(id string) bool {
	for i := range c.Filaments {
		if c.Filaments[i].ID == id {
			c.Filaments = append(c.Filaments[:i], c.Filaments[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the record with the given id, or nil.
func (c *Catalog) FindByID(id string) *FilamentRecord {
	for i := range c.Filaments {
		if c.Filaments[i].ID == id {
			return &c.Filaments[i]
		}
	}
	return nil
}

// FindByDisplayName returns the first record whose DisplayName equals name,
// or nil. Several records can share a label; prefer FindByID.
func (c *Catalog) FindByDisplayName(name string) *FilamentRecord {
	for i := range c.Filaments {
		if c.Filaments[i].DisplayName() == name {
			return &c.Filaments[i]
		}
	}
	return nil
}

// DisplayNames returns the labels of all records in catalog order.
func (c Catalog) DisplayNames() []string {
	names := make([]string, len(c.Filaments))
	for i, f := range c.Filaments {
		names[i] = f.DisplayName()
	}
	return names
}

// Validated returns a copy holding only the records that pass the Add
// rules, with brands trimmed and types canonicalized. Each dropped record
// yields an error naming its id.
func (c Catalog) Validated() (Catalog, []error) {
	out := NewCatalog()
	var errs []error
	for _, f := range c.Filaments {
		b, t, p, err := validateFilament(f.Brand, string(f.Type), f.PricePerKg.String())
		if err != nil {
			errs = append(errs, fmt.Errorf("filament %s: %w", f.ID, err))
			continue
		}
		out.Filaments = append(out.Filaments, FilamentRecord{ID: f.ID, Brand: b, Type: t, PricePerKg: p})
	}
	return out, errs
}

// EnsureUniqueIDs assigns a fresh id to every record whose id is empty or
// repeats an earlier one. It returns the number of ids replaced.
func (c *Catalog) EnsureUniqueIDs() int {
	seen := make(map[string]bool, len(c.Filaments))
	replaced := 0
	for i := range c.Filaments {
		f := &c.Filaments[i]
		if f.ID == "" || seen[f.ID] {
			f.ID = c.newID(f.Brand, f.Type)
			replaced++
		}
		seen[f.ID] = true
	}
	return replaced
}

// newID builds "{brand}_{type}_{8 hex chars}", lowercased with spaces
// replaced by underscores, retrying until it is unused in the catalog.
func (c *Catalog) newID(brand string, t FilamentType) string {
	prefix := strings.ReplaceAll(strings.ToLower(brand+"_"+string(t)), " ", "_")
	for {
		id := prefix + "_" + uuid.New().String()[:8]
		if c.FindByID(id) == nil {
			return id
		}
	}
}
