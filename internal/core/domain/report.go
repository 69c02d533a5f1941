package domain

import "time"

// ReportFormat identifies an output encoding.
type ReportFormat string

const (
	FormatPDF  ReportFormat = "pdf"
	FormatXLSX ReportFormat = "xlsx"
	FormatCSV  ReportFormat = "csv"
	FormatDOC  ReportFormat = "doc"
)

// Report is the descriptor of one generated report artifact. Created exactly
// once per successful generation and immutable thereafter.
type Report struct {
	ReportID        string       `json:"reportID"` // Primary key (UUID)
	OwnerUserID     string       `json:"ownerUserID"`
	CompanyID       string       `json:"companyID"`
	FinancialDataID string       `json:"financialDataID"`
	Format          ReportFormat `json:"format"`
	SelectedRatios  []string     `json:"selectedRatios"` // Canonical ratio ids rendered into the artifact
	ArtifactLocator string       `json:"artifactLocator"` // Key into the artifact store
	CreditsCharged  int64        `json:"creditsCharged"`
	CreatedAt       time.Time    `json:"createdAt"`
}
