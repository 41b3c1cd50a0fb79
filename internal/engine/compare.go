package engine

import (
	"sort"

	"github.com/piwi3910/PrintQuote/internal/model"
)

// FilamentComparison holds the quote for one candidate filament.
type FilamentComparison struct {
	Filament model.FilamentRecord
	Result   model.QuoteResult
	// Rank is 1 for the cheapest final price.
	Rank int
}

// CompareFilaments prices the same job with every filament and returns the
// results sorted by final price, cheapest first. Ties keep catalog order.
// The request's own filament is ignored. An invalid duration or mass is
// rejected even when there are no filaments.
func CompareFilaments(settings model.Settings, filaments []model.FilamentRecord, req model.QuoteRequest) ([]FilamentComparison, error) {
	if err := checkJob(req); err != nil {
		return nil, err
	}
	results := make([]FilamentComparison, 0, len(filaments))

	for i := range filaments {
		f := filaments[i]
		scenario := req
		scenario.Filament = &f

		res, err := Compute(settings, scenario)
		if err != nil {
			return nil, err
		}
		results = append(results, FilamentComparison{Filament: f, Result: res})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Result.FinalPrice.LessThan(results[j].Result.FinalPrice)
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}
