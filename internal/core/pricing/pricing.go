// Package pricing turns a report selection's cardinality into a monetary cost
// and the whole number of credits needed to cover it.
package pricing

import "github.com/shopspring/decimal"

// DefaultUnitPrice is the per-cell price in currency units when no override is
// configured.
var DefaultUnitPrice = decimal.NewFromFloat(0.25)

// Quote is the pure pricing outcome for one selection. Derived, never
// persisted on its own.
type Quote struct {
	CompaniesCount  int             `json:"companiesCount"`
	PeriodsCount    int             `json:"periodsCount"`
	RatiosCount     int             `json:"ratiosCount"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	RequiredCredits int64           `json:"requiredCredits"`
}

// NewQuote prices a selection of companies x periods x ratios at the given
// unit price. Counts below 1 are clamped to 1. Fractional cost always rounds
// up to the next whole credit, never down.
func NewQuote(companies, periods, ratios int, unitPrice decimal.Decimal) Quote {
	if companies < 1 {
		companies = 1
	}
	if periods < 1 {
		periods = 1
	}
	if ratios < 1 {
		ratios = 1
	}

	cells := decimal.NewFromInt(int64(companies) * int64(periods) * int64(ratios))
	total := cells.Mul(unitPrice)

	return Quote{
		CompaniesCount:  companies,
		PeriodsCount:    periods,
		RatiosCount:     ratios,
		UnitPrice:       unitPrice,
		TotalCost:       total,
		RequiredCredits: total.Ceil().IntPart(),
	}
}
