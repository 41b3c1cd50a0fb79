package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	secondsPerHour = decimal.NewFromInt(3600)
	minutesPerHour = decimal.NewFromInt(60)
	hoursPerDay    = decimal.NewFromInt(24)
)

// PrintDuration is the print time as entered: days, hours, minutes, seconds.
type PrintDuration struct {
	Days    decimal.Decimal
	Hours   decimal.Decimal
	Minutes decimal.Decimal
	Seconds decimal.Decimal
}

// DurationOfHours is a convenience constructor for whole-hour durations.
func DurationOfHours(h int64) PrintDuration {
	return PrintDuration{Hours: decimal.NewFromInt(h)}
}

// TotalHours converts the duration to hours:
// days*24 + hours + minutes/60 + seconds/3600.
func (d PrintDuration) TotalHours() decimal.Decimal {
	return d.Days.Mul(hoursPerDay).
		Add(d.Hours).
		Add(d.Minutes.Div(minutesPerHour)).
		Add(d.Seconds.Div(secondsPerHour))
}

// QuoteRequest is one print job to price. It is never persisted.
type QuoteRequest struct {
	Filament *FilamentRecord
	Grams    decimal.Decimal
	Duration PrintDuration
	// ShippingCost overrides Settings.ShippingCost when non-nil.
	ShippingCost *decimal.Decimal
}

// QuoteResult is the cost and price breakdown for a QuoteRequest.
// Values are unrounded.
type QuoteResult struct {
	Filament      FilamentRecord
	Grams         decimal.Decimal
	DurationHours decimal.Decimal

	MaterialCost    decimal.Decimal
	ElectricityCost decimal.Decimal
	WearCost        decimal.Decimal
	BaseCost        decimal.Decimal
	ErrorCost       decimal.Decimal
	TaxCost         decimal.Decimal
	TotalCost       decimal.Decimal
	SalePrice       decimal.Decimal
	ShippingCost    decimal.Decimal
	FinalPrice      decimal.Decimal
}

// HasShipping reports whether a shipping line applies.
func (r QuoteResult) HasShipping() bool {
	return r.ShippingCost.IsPositive()
}

// BreakdownLine is one labelled amount of a quote as presented to the user.
type BreakdownLine struct {
	Label  string
	Amount decimal.Decimal
	// Total marks the summary lines shown in bold.
	Total bool
}

// FinalPriceLabel labels the last line when shipping is charged.
const FinalPriceLabel = "FINAL PRICE (with shipping)"

// Breakdown lists the quote lines in display order. The shipping and
// final price lines are present only when shipping applies.
func (r QuoteResult) Breakdown() []BreakdownLine {
	lines := []BreakdownLine{
		{Label: "Material", Amount: r.MaterialCost},
		{Label: "Electricity", Amount: r.ElectricityCost},
		{Label: "Machine wear", Amount: r.WearCost},
		{Label: "Base cost", Amount: r.BaseCost},
		{Label: "Error margin", Amount: r.ErrorCost},
		{Label: "Electricity tax", Amount: r.TaxCost},
		{Label: "TOTAL COST", Amount: r.TotalCost, Total: true},
		{Label: "SALE PRICE", Amount: r.SalePrice, Total: true},
	}
	if r.HasShipping() {
		lines = append(lines,
			BreakdownLine{Label: "Shipping", Amount: r.ShippingCost},
			BreakdownLine{Label: FinalPriceLabel, Amount: r.FinalPrice, Total: true},
		)
	}
	return lines
}

// QuoteForm carries the raw text of the quote inputs.
type QuoteForm struct {
	FilamentID string
	Grams      string
	Days       string
	Hours      string
	Minutes    string
	Seconds    string
	// Shipping is optional; blank uses the settings value.
	Shipping string
}

// ParseQuoteForm converts the raw form into a QuoteRequest for the given
// filament. Blank numbers are zero. Range checks on duration and mass are
// left to the pricing engine; negative components are rejected here.
func ParseQuoteForm(form QuoteForm, filament *FilamentRecord) (QuoteRequest, error) {
	req := QuoteRequest{Filament: filament}
	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"grams", form.Grams, &req.Grams},
		{"days", form.Days, &req.Duration.Days},
		{"hours", form.Hours, &req.Duration.Hours},
		{"minutes", form.Minutes, &req.Duration.Minutes},
		{"seconds", form.Seconds, &req.Duration.Seconds},
	}

	for _, f := range fields {
		v, err := parseDecimalOr(f.raw, decimal.Zero)
		if err != nil {
			return QuoteRequest{}, newValidationError(f.name, "%q is not a valid number", f.raw)
		}
		if v.IsNegative() {
			return QuoteRequest{}, newValidationError(f.name, "must not be negative")
		}
		*f.dst = v
	}

	if strings.TrimSpace(form.Shipping) != "" {
		ship, err := ParseDecimal(form.Shipping)
		if err != nil {
			return QuoteRequest{}, newValidationError("shipping", "%q is not a valid number", form.Shipping)
		}
		if ship.IsNegative() {
			return QuoteRequest{}, newValidationError("shipping", "must not be negative")
		}
		req.ShippingCost = &ship
	}
	return req, nil
}
