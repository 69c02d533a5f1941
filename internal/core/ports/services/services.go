// Package services defines the service facades the handlers depend on.
package services

import (
	"context"

	"github.com/finratios/fin_report_app/internal/core/domain"
	"github.com/finratios/fin_report_app/internal/core/pricing"
	"github.com/finratios/fin_report_app/internal/dto"
	"github.com/finratios/fin_report_app/internal/render"
)

// CompanySvc manages the company directory.
type CompanySvc interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error)
	GetCompany(ctx context.Context, companyID string, caller Caller) (*domain.Company, error)
	ListCompanies(ctx context.Context, caller Caller) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, caller Caller) (*domain.Company, error)
}

// FinancialDataSvc manages statement figures and their cached ratios.
type FinancialDataSvc interface {
	SubmitFinancialData(ctx context.Context, req dto.CreateFinancialDataRequest, caller Caller) (*domain.FinancialData, error)
	GetFinancialData(ctx context.Context, financialDataID string, caller Caller) (*domain.FinancialData, error)
	ListFinancialDataByCompany(ctx context.Context, companyID string, caller Caller) ([]domain.FinancialData, error)
}

// CreditSvc is the credit ledger: the single place the admin-bypass rule and
// the atomic check-then-debit live.
type CreditSvc interface {
	AuthorizeAndDebit(ctx context.Context, userID string, required int64) (*domain.DebitReceipt, error)
	Credit(ctx context.Context, userID string, amount int64) (*domain.CreditAccount, error)
	GetAccount(ctx context.Context, userID string) (*domain.CreditAccount, error)
	EnsureAccount(ctx context.Context, userID string, role domain.UserRole) (*domain.CreditAccount, error)
}

// ReportSvc runs the full generation pipeline and serves stored reports.
type ReportSvc interface {
	GenerateReport(ctx context.Context, req dto.CreateReportRequest, caller Caller) (*domain.Report, pricing.Quote, error)
	GetReport(ctx context.Context, reportID string, caller Caller) (*domain.Report, error)
	// GetReportDetail also loads the company and statement snapshot the
	// report was generated from.
	GetReportDetail(ctx context.Context, reportID string, caller Caller) (*domain.Report, *domain.Company, *domain.FinancialData, error)
	ListReports(ctx context.Context, caller Caller) ([]domain.Report, error)
	DownloadArtifact(ctx context.Context, reportID string, caller Caller) (*render.Artifact, error)
}

// UserSvc is the local face of the authentication collaborator.
type UserSvc interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// Caller identifies the authenticated requester for ownership checks.
type Caller struct {
	UserID string
	Role   domain.UserRole
}

// IsAdmin reports whether the caller bypasses ownership checks.
func (c Caller) IsAdmin() bool { return c.Role == domain.RoleAdmin }
