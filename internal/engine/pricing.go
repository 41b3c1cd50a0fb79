// Package engine computes print quotes from settings and job parameters.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintQuote/internal/model"
)

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

// checkJob rejects a request whose duration or mass is not positive. These
// do not depend on the filament.
func checkJob(req model.QuoteRequest) error {
	if !req.Duration.TotalHours().IsPositive() {
		return model.NewQuoteComputationError("duration", "print duration must be greater than zero")
	}
	if !req.Grams.IsPositive() {
		return model.NewQuoteComputationError("grams", "filament mass must be greater than zero grams")
	}
	return nil
}

// Compute prices a print job. It is a pure function: neither settings nor
// the request (including the filament it points to) is modified, and the
// result is not rounded.
//
// The request is rejected with a *model.QuoteComputationError when the
// duration or mass is not positive or no filament is set.
func Compute(settings model.Settings, req model.QuoteRequest) (model.QuoteResult, error) {
	if err := checkJob(req); err != nil {
		return model.QuoteResult{}, err
	}
	hours := req.Duration.TotalHours()
	if req.Filament == nil {
		return model.QuoteResult{}, model.NewQuoteComputationError("filament",
			"no valid filament selected")
	}

	material := req.Grams.Div(thousand).Mul(req.Filament.PricePerKg)
	electricity := settings.PowerDrawWatts.Div(thousand).Mul(hours).Mul(settings.ElectricityPricePerKWh)

	wear := decimal.Zero
	if settings.MachineLifetimeHours.IsPositive() {
		wear = settings.SparePartsCost.Div(settings.MachineLifetimeHours).Mul(hours)
	}

	base := material.Add(electricity).Add(wear)
	errorCost := base.Mul(settings.ErrorMarginPct.Div(hundred))
	// Tax applies to the electricity line only.
	tax := electricity.Mul(settings.ElectricityTaxPct.Div(hundred))
	total := base.Add(errorCost).Add(tax)
	sale := total.Mul(settings.ProfitMultiplier)

	shipping := settings.ShippingCost
	if req.ShippingCost != nil {
		shipping = *req.ShippingCost
	}

	return model.QuoteResult{
		Filament:        *req.Filament,
		Grams:           req.Grams,
		DurationHours:   hours,
		MaterialCost:    material,
		ElectricityCost: electricity,
		WearCost:        wear,
		BaseCost:        base,
		ErrorCost:       errorCost,
		TaxCost:         tax,
		TotalCost:       total,
		SalePrice:       sale,
		ShippingCost:    shipping,
		FinalPrice:      sale.Add(shipping),
	}, nil
}
