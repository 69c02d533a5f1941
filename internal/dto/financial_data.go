package dto

import (
	"time"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// CreateFinancialDataRequest carries one fiscal year's raw statement figures.
// The short-term figures are required; extended figures are optional and
// simply leave their dependent ratios not computable when absent.
// Figure pointers let an explicit 0 pass the required check.
type CreateFinancialDataRequest struct {
	CompanyID  string `json:"companyId" binding:"required"`
	FiscalYear int    `json:"fiscalYear" binding:"required,gte=1900,lte=2200"`

	Cash                    *float64 `json:"cash" binding:"required"`
	Receivables             *float64 `json:"receivables" binding:"required"`
	Inventory               *float64 `json:"inventory" binding:"required"`
	OtherCurrentAssets      *float64 `json:"otherCurrentAssets" binding:"required"`
	ShortTermDebt           *float64 `json:"shortTermDebt" binding:"required"`
	Payables                *float64 `json:"payables" binding:"required"`
	OtherCurrentLiabilities *float64 `json:"otherCurrentLiabilities" binding:"required"`

	TotalAssets      *float64 `json:"totalAssets"`
	TotalLiabilities *float64 `json:"totalLiabilities"`
	Equity           *float64 `json:"equity"`
	Revenue          *float64 `json:"revenue"`
	GrossProfit      *float64 `json:"grossProfit"`
	NetIncome        *float64 `json:"netIncome"`
}

// FinancialDataResponse mirrors domain.FinancialData with derived totals.
type FinancialDataResponse struct {
	FinancialDataID string `json:"financialDataID"`
	CompanyID       string `json:"companyID"`
	FiscalYear      int    `json:"fiscalYear"`

	Cash                    float64 `json:"cash"`
	Receivables             float64 `json:"receivables"`
	Inventory               float64 `json:"inventory"`
	OtherCurrentAssets      float64 `json:"otherCurrentAssets"`
	ShortTermDebt           float64 `json:"shortTermDebt"`
	Payables                float64 `json:"payables"`
	OtherCurrentLiabilities float64 `json:"otherCurrentLiabilities"`

	TotalCurrentAssets      float64 `json:"totalCurrentAssets"`
	TotalCurrentLiabilities float64 `json:"totalCurrentLiabilities"`

	TotalAssets      *float64 `json:"totalAssets,omitempty"`
	TotalLiabilities *float64 `json:"totalLiabilities,omitempty"`
	Equity           *float64 `json:"equity,omitempty"`
	Revenue          *float64 `json:"revenue,omitempty"`
	GrossProfit      *float64 `json:"grossProfit,omitempty"`
	NetIncome        *float64 `json:"netIncome,omitempty"`

	CurrentRatio *float64 `json:"currentRatio,omitempty"`
	QuickRatio   *float64 `json:"quickRatio,omitempty"`
	CashRatio    *float64 `json:"cashRatio,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToFinancialDataResponse converts a domain record to its response DTO.
func ToFinancialDataResponse(d *domain.FinancialData) FinancialDataResponse {
	return FinancialDataResponse{
		FinancialDataID:         d.FinancialDataID,
		CompanyID:               d.CompanyID,
		FiscalYear:              d.FiscalYear,
		Cash:                    d.Cash,
		Receivables:             d.Receivables,
		Inventory:               d.Inventory,
		OtherCurrentAssets:      d.OtherCurrentAssets,
		ShortTermDebt:           d.ShortTermDebt,
		Payables:                d.Payables,
		OtherCurrentLiabilities: d.OtherCurrentLiabilities,
		TotalCurrentAssets:      d.TotalCurrentAssets(),
		TotalCurrentLiabilities: d.TotalCurrentLiabilities(),
		TotalAssets:             d.TotalAssets,
		TotalLiabilities:        d.TotalLiabilities,
		Equity:                  d.Equity,
		Revenue:                 d.Revenue,
		GrossProfit:             d.GrossProfit,
		NetIncome:               d.NetIncome,
		CurrentRatio:            d.CurrentRatio,
		QuickRatio:              d.QuickRatio,
		CashRatio:               d.CashRatio,
		CreatedAt:               d.CreatedAt,
		LastUpdatedAt:           d.LastUpdatedAt,
	}
}

// ToListFinancialDataResponse converts a slice of records.
func ToListFinancialDataResponse(records []domain.FinancialData) []FinancialDataResponse {
	res := make([]FinancialDataResponse, len(records))
	for i := range records {
		res[i] = ToFinancialDataResponse(&records[i])
	}
	return res
}
