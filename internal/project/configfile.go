package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintQuote/internal/model"
)

// settingsDoc is the on-disk "settings" object. Numbers are stored as
// strings; the field order here is the order written to disk.
type settingsDoc struct {
	PrecioKWh       string `json:"precio_kwh"`
	ConsumoW        string `json:"consumo_w"`
	DesgasteHoras   string `json:"desgaste_horas"`
	PrecioRepuestos string `json:"precio_repuestos"`
	MargenErrorPct  string `json:"margen_error_pct"`
	IvaLuzPct       string `json:"iva_luz_pct"`
	MargenGanancia  string `json:"margen_ganancia_x"`
	CostoEnvio      string `json:"costo_envio"`
	Geometry        string `json:"geometry"`
}

// filamentDoc is one entry of the on-disk "filaments" array.
type filamentDoc struct {
	ID      string      `json:"id"`
	Brand   string      `json:"brand"`
	Type    string      `json:"type"`
	PriceKg priceNumber `json:"price_kg"`
}

// priceNumber is written as a bare JSON number rather than the quoted
// string decimal.Decimal produces by default.
type priceNumber struct {
	decimal.Decimal
}

func (p priceNumber) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// rawFilamentDoc defers price parsing so one unreadable price does not
// fail the whole document.
type rawFilamentDoc struct {
	ID      string          `json:"id"`
	Brand   string          `json:"brand"`
	Type    string          `json:"type"`
	PriceKg json.RawMessage `json:"price_kg"`
}

// document is the full persisted file.
type document struct {
	Settings  settingsDoc   `json:"settings"`
	Filaments []filamentDoc `json:"filaments"`
}

// rawDocument is used for decoding so absent keys and number-typed
// settings can be told apart.
type rawDocument struct {
	Settings  map[string]json.RawMessage `json:"settings"`
	Filaments []rawFilamentDoc           `json:"filaments"`
}

func newSettingsDoc(s model.Settings) settingsDoc {
	return settingsDoc{
		PrecioKWh:       s.Get(model.KeyElectricityPrice),
		ConsumoW:        s.Get(model.KeyPowerDraw),
		DesgasteHoras:   s.Get(model.KeyMachineLifetime),
		PrecioRepuestos: s.Get(model.KeySparePartsCost),
		MargenErrorPct:  s.Get(model.KeyErrorMargin),
		IvaLuzPct:       s.Get(model.KeyElectricityTax),
		MargenGanancia:  s.Get(model.KeyProfitMultiplier),
		CostoEnvio:      s.Get(model.KeyShippingCost),
		Geometry:        s.Get(model.KeyWindowGeometry),
	}
}

func newFilamentDocs(c model.Catalog) []filamentDoc {
	docs := make([]filamentDoc, len(c.Filaments))
	for i, f := range c.Filaments {
		docs[i] = filamentDoc{
			ID:      f.ID,
			Brand:   f.Brand,
			Type:    string(f.Type),
			PriceKg: priceNumber{f.PricePerKg},
		}
	}
	return docs
}

// EncodeConfig renders settings and catalog as the persisted JSON document.
func EncodeConfig(settings model.Settings, catalog model.Catalog) ([]byte, error) {
	doc := document{
		Settings:  newSettingsDoc(settings),
		Filaments: newFilamentDocs(catalog),
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeConfig parses a persisted document. Missing settings fields, and
// fields whose value is unreadable or out of range, take their default;
// each such replacement of a present value is reported in warnings.
// Filaments are kept as stored except that empty or repeated ids are
// regenerated. An error is returned only when data is not a JSON object
// of the expected shape.
func DecodeConfig(data []byte) (model.Settings, model.Catalog, []string, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Settings{}, model.Catalog{}, nil, err
	}

	settings, warnings := decodeSettings(raw.Settings)

	catalog := model.NewCatalog()
	for _, f := range raw.Filaments {
		price, err := priceValue(f.PriceKg)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("filament %q: %v; price set to 0", f.ID, err))
		}
		catalog.Filaments = append(catalog.Filaments, model.FilamentRecord{
			ID:         f.ID,
			Brand:      f.Brand,
			Type:       model.FilamentType(f.Type),
			PricePerKg: price,
		})
	}
	if n := catalog.EnsureUniqueIDs(); n > 0 {
		warnings = append(warnings, fmt.Sprintf("assigned new ids to %d filaments with missing or duplicate ids", n))
	}

	return settings, catalog, warnings, nil
}

func decodeSettings(raw map[string]json.RawMessage) (model.Settings, []string) {
	settings := model.DefaultSettings()
	var warnings []string

	for _, key := range model.SettingKeys() {
		msg, ok := raw[string(key)]
		if !ok || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			continue
		}
		value, err := settingValue(msg)
		if err == nil {
			if key == model.KeyWindowGeometry {
				// Older files may carry a "+X+Y" position suffix.
				value, _, _ = strings.Cut(value, "+")
			}
			err = settings.Set(key, value)
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("setting %s: %v; using default %s", key, err, settings.Get(key)))
		}
	}
	return settings, warnings
}

// priceValue reads price_kg stored as a JSON number or string.
func priceValue(msg json.RawMessage) (decimal.Decimal, error) {
	if len(msg) == 0 || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return decimal.Zero, fmt.Errorf("missing price_kg")
	}
	s, err := settingValue(msg)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := model.ParseDecimal(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price_kg %s", msg)
	}
	return d, nil
}

// settingValue returns the text of a settings value stored either as a
// JSON string or as a JSON number.
func settingValue(msg json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(msg, &n); err != nil {
		return "", fmt.Errorf("unsupported value %s", msg)
	}
	return n.String(), nil
}
