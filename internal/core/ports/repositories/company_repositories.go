package repositories

import (
	"context"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// CompanyRepository persists companies.
type CompanyRepository interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompaniesByOwner(ctx context.Context, ownerUserID string) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, company domain.Company) error
}
