package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	want := map[SettingKey]string{
		KeyElectricityPrice: "199.7464",
		KeyPowerDraw:        "150",
		KeyMachineLifetime:  "5000",
		KeySparePartsCost:   "305000",
		KeyErrorMargin:      "10",
		KeyElectricityTax:   "21",
		KeyProfitMultiplier: "1.5",
		KeyShippingCost:     "0",
		KeyWindowGeometry:   "950x700",
	}
	for key, v := range want {
		if got := s.Get(key); got != v {
			t.Errorf("%s: expected %s, got %s", key, v, got)
		}
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestSettingsSet(t *testing.T) {
	s := DefaultSettings()

	if err := s.Set(KeyElectricityPrice, " 210,5 "); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !s.ElectricityPricePerKWh.Equal(decimal.RequireFromString("210.5")) {
		t.Errorf("expected 210.5, got %s", s.ElectricityPricePerKWh)
	}

	if err := s.Set(KeyShippingCost, ""); err != nil {
		t.Fatalf("blank shipping should be accepted: %v", err)
	}
	if !s.ShippingCost.IsZero() {
		t.Errorf("blank shipping should be 0, got %s", s.ShippingCost)
	}

	s.ProfitMultiplier = decimal.NewFromInt(3)
	if err := s.Set(KeyProfitMultiplier, ""); err != nil {
		t.Fatalf("blank multiplier should be accepted: %v", err)
	}
	if s.ProfitMultiplier.String() != "1.5" {
		t.Errorf("blank multiplier should be 1.5, got %s", s.ProfitMultiplier)
	}

	if err := s.Set(KeyWindowGeometry, "1200x800"); err != nil {
		t.Fatalf("geometry rejected: %v", err)
	}
	if s.WindowGeometry != "1200x800" {
		t.Errorf("expected geometry 1200x800, got %s", s.WindowGeometry)
	}
}

func TestSettingsSetRejected(t *testing.T) {
	tests := []struct {
		name string
		key  SettingKey
		raw  string
	}{
		{"not a number", KeyPowerDraw, "lots"},
		{"negative lifetime", KeyMachineLifetime, "-1"},
		{"negative tax", KeyElectricityTax, "-21"},
		{"zero multiplier", KeyProfitMultiplier, "0"},
		{"bad geometry", KeyWindowGeometry, "big"},
		{"zero geometry", KeyWindowGeometry, "0x700"},
		{"unknown key", SettingKey("color"), "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			before := s.Get(tt.key)

			err := s.Set(tt.key, tt.raw)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if s.Get(tt.key) != before {
				t.Errorf("value changed after rejected set: %s", s.Get(tt.key))
			}
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	s.SparePartsCost = decimal.NewFromInt(-1)
	var verr *ValidationError
	if err := s.Validate(); !errors.As(err, &verr) || verr.Field != KeySparePartsCost.Label() {
		t.Errorf("expected spare parts violation, got %v", err)
	}

	s = DefaultSettings()
	s.WindowGeometry = ""
	if err := s.Validate(); err == nil {
		t.Error("expected geometry violation")
	}
}

func TestParseGeometry(t *testing.T) {
	w, h, err := ParseGeometry("950x700")
	if err != nil || w != 950 || h != 700 {
		t.Errorf("ParseGeometry = %d, %d, %v", w, h, err)
	}
	for _, bad := range []string{"", "950", "x700", "950x", "-5x10", "axb"} {
		if _, _, err := ParseGeometry(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
	if got := FormatGeometry(1024, 768); got != "1024x768" {
		t.Errorf("FormatGeometry = %s", got)
	}
}
