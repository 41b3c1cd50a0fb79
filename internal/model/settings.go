package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SettingKey identifies one settings field. The values double as the keys
// of the "settings" object in the persisted configuration file.
type SettingKey string

const (
	KeyElectricityPrice SettingKey = "precio_kwh"
	KeyPowerDraw        SettingKey = "consumo_w"
	KeyMachineLifetime  SettingKey = "desgaste_horas"
	KeySparePartsCost   SettingKey = "precio_repuestos"
	KeyErrorMargin      SettingKey = "margen_error_pct"
	KeyElectricityTax   SettingKey = "iva_luz_pct"
	KeyProfitMultiplier SettingKey = "margen_ganancia_x"
	KeyShippingCost     SettingKey = "costo_envio"
	KeyWindowGeometry   SettingKey = "geometry"
)

// SettingKeys lists every settings field in persisted order.
func SettingKeys() []SettingKey {
	return []SettingKey{
		KeyElectricityPrice,
		KeyPowerDraw,
		KeyMachineLifetime,
		KeySparePartsCost,
		KeyErrorMargin,
		KeyElectricityTax,
		KeyProfitMultiplier,
		KeyShippingCost,
		KeyWindowGeometry,
	}
}

// Label returns the human-readable field name used in messages and forms.
func (k SettingKey) Label() string {
	switch k {
	case KeyElectricityPrice:
		return "Electricity price per kWh"
	case KeyPowerDraw:
		return "Power draw (W)"
	case KeyMachineLifetime:
		return "Machine lifetime (h)"
	case KeySparePartsCost:
		return "Spare parts cost"
	case KeyErrorMargin:
		return "Error margin (%)"
	case KeyElectricityTax:
		return "Electricity tax (%)"
	case KeyProfitMultiplier:
		return "Profit multiplier (x)"
	case KeyShippingCost:
		return "Shipping cost"
	case KeyWindowGeometry:
		return "Window geometry"
	default:
		return string(k)
	}
}

// DefaultWindowGeometry is the initial window size, "WxH".
const DefaultWindowGeometry = "950x700"

// Settings holds the machine and financial parameters shared by every quote.
type Settings struct {
	ElectricityPricePerKWh decimal.Decimal
	PowerDrawWatts         decimal.Decimal
	MachineLifetimeHours   decimal.Decimal // 0 disables wear cost
	SparePartsCost         decimal.Decimal
	ErrorMarginPct         decimal.Decimal
	ElectricityTaxPct      decimal.Decimal
	ProfitMultiplier       decimal.Decimal
	ShippingCost           decimal.Decimal
	WindowGeometry         string
}

// DefaultSettings returns the settings used when no valid configuration exists.
func DefaultSettings() Settings {
	return Settings{
		ElectricityPricePerKWh: decimal.RequireFromString("199.74640"),
		PowerDrawWatts:         decimal.NewFromInt(150),
		MachineLifetimeHours:   decimal.NewFromInt(5000),
		SparePartsCost:         decimal.NewFromInt(305000),
		ErrorMarginPct:         decimal.NewFromInt(10),
		ElectricityTaxPct:      decimal.NewFromInt(21),
		ProfitMultiplier:       decimal.RequireFromString("1.5"),
		ShippingCost:           decimal.Zero,
		WindowGeometry:         DefaultWindowGeometry,
	}
}

// decimalField returns a pointer to the numeric field for key, or nil for
// non-numeric keys.
func (s *Settings) decimalField(key SettingKey) *decimal.Decimal {
	switch key {
	case KeyElectricityPrice:
		return &s.ElectricityPricePerKWh
	case KeyPowerDraw:
		return &s.PowerDrawWatts
	case KeyMachineLifetime:
		return &s.MachineLifetimeHours
	case KeySparePartsCost:
		return &s.SparePartsCost
	case KeyErrorMargin:
		return &s.ErrorMarginPct
	case KeyElectricityTax:
		return &s.ElectricityTaxPct
	case KeyProfitMultiplier:
		return &s.ProfitMultiplier
	case KeyShippingCost:
		return &s.ShippingCost
	}
	return nil
}

// Get returns the field value as it is persisted and shown in input fields.
func (s Settings) Get(key SettingKey) string {
	if key == KeyWindowGeometry {
		return s.WindowGeometry
	}
	if d := s.decimalField(key); d != nil {
		return FormatPlain(*d)
	}
	return ""
}

// Set parses raw and stores it in the field named by key. A rejected value
// leaves s unchanged. A blank numeric value means 1.5 for the profit
// multiplier and 0 for every other field.
func (s *Settings) Set(key SettingKey, raw string) error {
	if key == KeyWindowGeometry {
		geom := strings.TrimSpace(raw)
		if _, _, err := ParseGeometry(geom); err != nil {
			return newValidationError(key.Label(), "%v", err)
		}
		s.WindowGeometry = geom
		return nil
	}

	field := s.decimalField(key)
	if field == nil {
		return newValidationError(string(key), "unknown setting")
	}

	fallback := decimal.Zero
	if key == KeyProfitMultiplier {
		fallback = decimal.RequireFromString("1.5")
	}
	v, err := parseDecimalOr(raw, fallback)
	if err != nil {
		return newValidationError(key.Label(), "%q is not a valid number", raw)
	}
	if err := checkSetting(key, v); err != nil {
		return err
	}
	*field = v
	return nil
}

// SetDecimal stores an already-parsed value after checking its constraint.
func (s *Settings) SetDecimal(key SettingKey, v decimal.Decimal) error {
	field := s.decimalField(key)
	if field == nil {
		return newValidationError(string(key), "not a numeric setting")
	}
	if err := checkSetting(key, v); err != nil {
		return err
	}
	*field = v
	return nil
}

func checkSetting(key SettingKey, v decimal.Decimal) error {
	if key == KeyProfitMultiplier {
		if !v.IsPositive() {
			return newValidationError(key.Label(), "must be greater than zero")
		}
		return nil
	}
	if v.IsNegative() {
		return newValidationError(key.Label(), "must not be negative")
	}
	return nil
}

// Validate checks every field constraint and returns the first violation.
func (s Settings) Validate() error {
	for _, key := range SettingKeys() {
		if key == KeyWindowGeometry {
			if _, _, err := ParseGeometry(s.WindowGeometry); err != nil {
				return newValidationError(key.Label(), "%v", err)
			}
			continue
		}
		if err := checkSetting(key, *s.decimalField(key)); err != nil {
			return err
		}
	}
	return nil
}

// ParseGeometry splits a "WxH" window size into positive integers.
func ParseGeometry(geom string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.TrimSpace(geom), "x")
	if !ok {
		return 0, 0, fmt.Errorf("geometry %q must look like WIDTHxHEIGHT", geom)
	}
	width, err = strconv.Atoi(w)
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid width in geometry %q", geom)
	}
	height, err = strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid height in geometry %q", geom)
	}
	return width, height, nil
}

// FormatGeometry renders a window size as "WxH".
func FormatGeometry(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}
