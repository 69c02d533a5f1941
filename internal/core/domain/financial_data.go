package domain

// FinancialData holds one company's raw statement figures for one fiscal year,
// plus the cached liquidity ratios derived from them. The cached ratios are
// always recomputed from the raw figures at save time and never hand-edited.
//
// The short-term figures are required on submission. The extended figures feed
// the structure and profitability ratio families and may be absent (nil); a
// ratio whose input is absent is simply not computable.
type FinancialData struct {
	FinancialDataID string `json:"financialDataID"` // Primary key (UUID)
	CompanyID       string `json:"companyID"`       // FK -> companies.company_id
	FiscalYear      int    `json:"fiscalYear"`      // At most one record per company+year

	// Short-term figures (required).
	Cash                   float64 `json:"cash"`
	Receivables            float64 `json:"receivables"`
	Inventory              float64 `json:"inventory"`
	OtherCurrentAssets     float64 `json:"otherCurrentAssets"`
	ShortTermDebt          float64 `json:"shortTermDebt"`
	Payables               float64 `json:"payables"`
	OtherCurrentLiabilities float64 `json:"otherCurrentLiabilities"`

	// Extended figures (optional; nil means not reported).
	TotalAssets      *float64 `json:"totalAssets,omitempty"`
	TotalLiabilities *float64 `json:"totalLiabilities,omitempty"`
	Equity           *float64 `json:"equity,omitempty"`
	Revenue          *float64 `json:"revenue,omitempty"`
	GrossProfit      *float64 `json:"grossProfit,omitempty"`
	NetIncome        *float64 `json:"netIncome,omitempty"`

	// Derived, cached at save time. Nil when not computable.
	CurrentRatio *float64 `json:"currentRatio,omitempty"`
	QuickRatio   *float64 `json:"quickRatio,omitempty"`
	CashRatio    *float64 `json:"cashRatio,omitempty"`

	AuditFields
}

// TotalCurrentAssets is always derived from the raw figures, never stored.
func (f FinancialData) TotalCurrentAssets() float64 {
	return f.Cash + f.Receivables + f.Inventory + f.OtherCurrentAssets
}

// TotalCurrentLiabilities is always derived from the raw figures, never stored.
func (f FinancialData) TotalCurrentLiabilities() float64 {
	return f.ShortTermDebt + f.Payables + f.OtherCurrentLiabilities
}
