package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTotalHours(t *testing.T) {
	d := PrintDuration{
		Days:    decimal.NewFromInt(1),
		Hours:   decimal.NewFromInt(2),
		Minutes: decimal.NewFromInt(45),
		Seconds: decimal.NewFromInt(900),
	}
	if got := d.TotalHours(); !got.Equal(decimal.RequireFromString("27")) {
		t.Errorf("expected 27 hours, got %s", got)
	}
	if !(PrintDuration{}).TotalHours().IsZero() {
		t.Error("empty duration should be zero hours")
	}
}

func TestParseQuoteForm(t *testing.T) {
	f := &FilamentRecord{ID: "f1", Brand: "Acme", Type: FilamentPLA, PricePerKg: decimal.NewFromInt(100)}

	req, err := ParseQuoteForm(QuoteForm{Grams: "12,5", Hours: "2", Minutes: ""}, f)
	if err != nil {
		t.Fatalf("ParseQuoteForm failed: %v", err)
	}
	if req.Filament != f {
		t.Error("filament not carried over")
	}
	if req.Grams.String() != "12.5" {
		t.Errorf("expected 12.5 grams, got %s", req.Grams)
	}
	if !req.Duration.TotalHours().Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected 2 hours, got %s", req.Duration.TotalHours())
	}
	if req.ShippingCost != nil {
		t.Error("blank shipping should not override settings")
	}

	req, err = ParseQuoteForm(QuoteForm{Grams: "1", Hours: "1", Shipping: "350"}, f)
	if err != nil {
		t.Fatal(err)
	}
	if req.ShippingCost == nil || req.ShippingCost.String() != "350" {
		t.Errorf("expected shipping override 350, got %v", req.ShippingCost)
	}
}

func TestParseQuoteFormRejected(t *testing.T) {
	tests := []struct {
		name  string
		form  QuoteForm
		field string
	}{
		{"bad grams", QuoteForm{Grams: "ten"}, "grams"},
		{"negative minutes", QuoteForm{Grams: "1", Minutes: "-10"}, "minutes"},
		{"bad seconds", QuoteForm{Seconds: "1:30"}, "seconds"},
		{"bad shipping", QuoteForm{Shipping: "free"}, "shipping"},
		{"negative shipping", QuoteForm{Shipping: "-1"}, "shipping"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuoteForm(tt.form, nil)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1845.3335028", "$ 1,845.33"},
		{"0", "$ 0.00"},
		{"925", "$ 925.00"},
		{"1234567.891", "$ 1,234,567.89"},
	}
	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidationErrorKinds(t *testing.T) {
	qerr := NewQuoteComputationError("grams", "filament mass must be greater than zero grams")
	if qerr.Error() != "filament mass must be greater than zero grams" {
		t.Errorf("quote errors surface their message verbatim, got %q", qerr.Error())
	}
	if !errors.Is(qerr, ErrValidation) {
		t.Error("quote error should match ErrValidation")
	}

	verr := &ValidationError{Field: "brand", Message: "must not be empty"}
	if verr.Error() != "brand: must not be empty" {
		t.Errorf("unexpected message %q", verr.Error())
	}

	cause := errors.New("disk full")
	if !errors.Is(&ConfigSaveError{Path: "x", Err: cause}, cause) {
		t.Error("ConfigSaveError should unwrap to its cause")
	}
	if !errors.Is(&ConfigLoadError{Path: "x", Err: cause}, cause) {
		t.Error("ConfigLoadError should unwrap to its cause")
	}
}

func TestBreakdownShippingLines(t *testing.T) {
	r := QuoteResult{
		TotalCost:  decimal.NewFromInt(100),
		SalePrice:  decimal.NewFromInt(150),
		FinalPrice: decimal.NewFromInt(150),
	}
	lines := r.Breakdown()
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines without shipping, got %d", len(lines))
	}
	if last := lines[len(lines)-1]; last.Label != "SALE PRICE" || !last.Total {
		t.Errorf("unexpected last line %+v", last)
	}

	r.ShippingCost = decimal.NewFromInt(20)
	r.FinalPrice = decimal.NewFromInt(170)
	lines = r.Breakdown()
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines with shipping, got %d", len(lines))
	}
	if lines[8].Label != "Shipping" || !lines[8].Amount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("unexpected shipping line %+v", lines[8])
	}
	if lines[9].Label != FinalPriceLabel || !lines[9].Amount.Equal(decimal.NewFromInt(170)) {
		t.Errorf("unexpected final line %+v", lines[9])
	}
}
