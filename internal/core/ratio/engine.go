package ratio

import (
	"fmt"
	"math"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// thresholds holds the fixed band cutoffs for one ratio. For most ratios a
// higher value is better; for leverage ratios (lowerIsBetter) the comparison
// flips and the cutoffs are upper bounds.
type thresholds struct {
	strong        float64
	adequate      float64
	acceptable    float64
	lowerIsBetter bool
}

var bandTable = map[ID]thresholds{
	CurrentRatio:     {strong: 2.0, adequate: 1.5, acceptable: 1.0},
	QuickRatio:       {strong: 1.5, adequate: 1.0, acceptable: 0.8},
	CashRatio:        {strong: 1.0, adequate: 0.5, acceptable: 0.2},
	DebtRatio:        {strong: 0.4, adequate: 0.5, acceptable: 0.6, lowerIsBetter: true},
	DebtToEquity:     {strong: 1.0, adequate: 1.5, acceptable: 2.0, lowerIsBetter: true},
	EquityMultiplier: {strong: 2.0, adequate: 2.5, acceptable: 3.0, lowerIsBetter: true},
	GrossMargin:      {strong: 0.4, adequate: 0.3, acceptable: 0.2},
	NetMargin:        {strong: 0.2, adequate: 0.1, acceptable: 0.05},
	ROE:              {strong: 0.2, adequate: 0.15, acceptable: 0.1},
	ROA:              {strong: 0.1, adequate: 0.07, acceptable: 0.05},
}

// Evaluate assigns the qualitative band for a computed ratio value.
func Evaluate(id ID, value float64) Band {
	t, ok := bandTable[id]
	if !ok {
		return BandNotComputable
	}
	if t.lowerIsBetter {
		switch {
		case value <= t.strong:
			return BandStrong
		case value <= t.adequate:
			return BandAdequate
		case value <= t.acceptable:
			return BandAcceptable
		default:
			return BandWeak
		}
	}
	switch {
	case value >= t.strong:
		return BandStrong
	case value >= t.adequate:
		return BandAdequate
	case value >= t.acceptable:
		return BandAcceptable
	default:
		return BandWeak
	}
}

// Round2 rounds a ratio value to the 2 decimal places used at presentation
// time. Internal computation keeps full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// operand is a named numerator/denominator input; present reports whether the
// underlying figure was supplied at all.
type operand struct {
	name    string
	value   float64
	present bool
}

func known(name string, v float64) operand { return operand{name: name, value: v, present: true} }

func optional(name string, v *float64) operand {
	if v == nil {
		return operand{name: name}
	}
	return operand{name: name, value: *v, present: true}
}

// entry computes num/den with the division-by-zero/missing-input policy from
// the engine contract: a zero, absent, or NaN divisor (or absent numerator)
// yields a nil value and the "not computable" band, never an error.
func entry(id ID, num, den operand) Entry {
	trace := fmt.Sprintf("%s / %s", num.name, den.name)
	if !num.present || !den.present {
		return Entry{Evaluation: BandNotComputable, FormulaTrace: trace + " (input missing)"}
	}
	trace = fmt.Sprintf("%s = %.2f / %.2f", trace, num.value, den.value)
	if den.value == 0 || math.IsNaN(den.value) || math.IsNaN(num.value) {
		return Entry{Evaluation: BandNotComputable, FormulaTrace: trace}
	}
	v := num.value / den.value
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Entry{Evaluation: BandNotComputable, FormulaTrace: trace}
	}
	return Entry{Value: &v, Evaluation: Evaluate(id, v), FormulaTrace: trace}
}

// Compute derives every ratio family from one fiscal year's figures. Pure and
// safe to call concurrently; ratios with missing or zero divisors come back as
// "not computable" without aborting the rest of the batch.
func Compute(f domain.FinancialData) Result {
	currentAssets := known("currentAssets", f.TotalCurrentAssets())
	currentLiabilities := known("currentLiabilities", f.TotalCurrentLiabilities())
	quickAssets := known("currentAssets - inventory", f.TotalCurrentAssets()-f.Inventory)
	cash := known("cash", f.Cash)

	totalAssets := optional("totalAssets", f.TotalAssets)
	totalLiabilities := optional("totalLiabilities", f.TotalLiabilities)
	equity := optional("equity", f.Equity)
	revenue := optional("revenue", f.Revenue)
	grossProfit := optional("grossProfit", f.GrossProfit)
	netIncome := optional("netIncome", f.NetIncome)

	return Result{
		CurrentRatio:     entry(CurrentRatio, currentAssets, currentLiabilities),
		QuickRatio:       entry(QuickRatio, quickAssets, currentLiabilities),
		CashRatio:        entry(CashRatio, cash, currentLiabilities),
		DebtRatio:        entry(DebtRatio, totalLiabilities, totalAssets),
		DebtToEquity:     entry(DebtToEquity, totalLiabilities, equity),
		EquityMultiplier: entry(EquityMultiplier, totalAssets, equity),
		GrossMargin:      entry(GrossMargin, grossProfit, revenue),
		NetMargin:        entry(NetMargin, netIncome, revenue),
		ROE:              entry(ROE, netIncome, equity),
		ROA:              entry(ROA, netIncome, totalAssets),
	}
}
