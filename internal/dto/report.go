package dto

import (
	"time"

	"github.com/finratios/fin_report_app/internal/core/domain"
	"github.com/finratios/fin_report_app/internal/core/pricing"
	"github.com/shopspring/decimal"
)

// CreateReportRequest triggers the full generation pipeline for one statement.
type CreateReportRequest struct {
	CompanyID        string   `json:"companyId" binding:"required"`
	FinancialDataID  string   `json:"financialDataId" binding:"required"`
	Format           string   `json:"format" binding:"required,oneof=pdf xlsx csv doc"`
	SelectedRatioIDs []string `json:"selectedRatioIds" binding:"required,min=1"`
	CompaniesCount   int      `json:"companiesCount" binding:"required,gte=1"`
	PeriodsCount     int      `json:"periodsCount" binding:"required,gte=1"`
	RatiosCount      int      `json:"ratiosCount" binding:"required,gte=1"`
}

// ReportResponse is the descriptor returned on creation and lookup.
type ReportResponse struct {
	ReportID        string          `json:"id"`
	OwnerUserID     string          `json:"ownerUserID"`
	CompanyID       string          `json:"companyID"`
	FinancialDataID string          `json:"financialDataID"`
	Format          string          `json:"format"`
	SelectedRatios  []string        `json:"selectedRatios"`
	ArtifactLocator string          `json:"artifactLocator"`
	CreditsCharged  int64           `json:"creditsCharged"`
	TotalCost       decimal.Decimal `json:"totalCost,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToReportResponse converts a domain.Report to its response DTO.
func ToReportResponse(r *domain.Report) ReportResponse {
	return ReportResponse{
		ReportID:        r.ReportID,
		OwnerUserID:     r.OwnerUserID,
		CompanyID:       r.CompanyID,
		FinancialDataID: r.FinancialDataID,
		Format:          string(r.Format),
		SelectedRatios:  r.SelectedRatios,
		ArtifactLocator: r.ArtifactLocator,
		CreditsCharged:  r.CreditsCharged,
		CreatedAt:       r.CreatedAt,
	}
}

// ToCreatedReportResponse includes the quote priced for the creation call.
func ToCreatedReportResponse(r *domain.Report, quote pricing.Quote) ReportResponse {
	res := ToReportResponse(r)
	res.TotalCost = quote.TotalCost
	return res
}

// ToListReportResponse converts a slice of reports.
func ToListReportResponse(reports []domain.Report) []ReportResponse {
	res := make([]ReportResponse, len(reports))
	for i := range reports {
		res[i] = ToReportResponse(&reports[i])
	}
	return res
}

// ReportDetailResponse adds the company/statement snapshot to a descriptor so
// the caller can re-render or display the report.
type ReportDetailResponse struct {
	Report        ReportResponse        `json:"report"`
	Company       CompanyResponse       `json:"company"`
	FinancialData FinancialDataResponse `json:"financialData"`
}
