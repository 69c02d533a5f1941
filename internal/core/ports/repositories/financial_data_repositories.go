package repositories

import (
	"context"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// FinancialDataRepository persists one fiscal year's statement figures per
// company. Saving a company+year that already exists replaces the figures
// (upsert-by-year).
type FinancialDataRepository interface {
	UpsertFinancialData(ctx context.Context, data domain.FinancialData) (*domain.FinancialData, error)
	FindFinancialDataByID(ctx context.Context, financialDataID string) (*domain.FinancialData, error)
	// ListFinancialDataByCompany returns records newest fiscal year first.
	ListFinancialDataByCompany(ctx context.Context, companyID string) ([]domain.FinancialData, error)
}
