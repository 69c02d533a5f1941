package ratio

// ID identifies one ratio. The ids double as the wire identifiers accepted in
// report selection and emitted in rendered artifacts.
type ID string

const (
	CurrentRatio     ID = "currentRatio"
	QuickRatio       ID = "quickRatio"
	CashRatio        ID = "cashRatio"
	DebtRatio        ID = "debtRatio"
	DebtToEquity     ID = "debtToEquity"
	EquityMultiplier ID = "equityMultiplier"
	GrossMargin      ID = "grossMargin"
	NetMargin        ID = "netMargin"
	ROE              ID = "roe"
	ROA              ID = "roa"
)

// acidTestRatio is a historical alias for quickRatio; it is accepted on input
// and normalized once here, never emitted.
const aliasAcidTest = "acidTestRatio"

// AllIDs returns every ratio id in presentation order.
func AllIDs() []ID {
	return []ID{
		CurrentRatio, QuickRatio, CashRatio,
		DebtRatio, DebtToEquity, EquityMultiplier,
		GrossMargin, NetMargin, ROE, ROA,
	}
}

// CanonicalID maps a wire identifier to its canonical ratio id.
func CanonicalID(s string) (ID, bool) {
	if s == aliasAcidTest {
		return QuickRatio, true
	}
	for _, id := range AllIDs() {
		if s == string(id) {
			return id, true
		}
	}
	return "", false
}

// Label returns the human-readable name used in rendered artifacts.
func (id ID) Label() string {
	switch id {
	case CurrentRatio:
		return "Current Ratio"
	case QuickRatio:
		return "Quick (Acid-Test) Ratio"
	case CashRatio:
		return "Cash Ratio"
	case DebtRatio:
		return "Debt Ratio"
	case DebtToEquity:
		return "Debt to Equity"
	case EquityMultiplier:
		return "Equity Multiplier"
	case GrossMargin:
		return "Gross Margin"
	case NetMargin:
		return "Net Margin"
	case ROE:
		return "Return on Equity"
	case ROA:
		return "Return on Assets"
	}
	return string(id)
}

// Band is the qualitative evaluation of a ratio value.
type Band string

const (
	BandStrong        Band = "strong"
	BandAdequate      Band = "adequate"
	BandAcceptable    Band = "acceptable"
	BandWeak          Band = "weak"
	BandNotComputable Band = "not computable"
)

// Entry is one computed ratio. A nil Value means the ratio was not computable
// (zero or missing divisor, missing input); this is not an error condition.
type Entry struct {
	Value        *float64 `json:"value,omitempty"`
	Evaluation   Band     `json:"evaluation"`
	FormulaTrace string   `json:"formulaTrace"`
}

// Result maps ratio ids to their computed entries. Every id in AllIDs is
// present after Compute.
type Result map[ID]Entry
