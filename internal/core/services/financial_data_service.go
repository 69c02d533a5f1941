package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/finratios/fin_report_app/internal/core/ratio"
	"github.com/finratios/fin_report_app/internal/dto"
	"github.com/google/uuid"
)

// financialDataService implements portssvc.FinancialDataSvc. Derived ratios
// are recomputed from the raw figures on every save; the cached values are
// never taken from input.
type financialDataService struct {
	BaseService
	dataRepo    portsrepo.FinancialDataRepository
	companyRepo portsrepo.CompanyRepository
}

// NewFinancialDataService creates a new financial data service.
func NewFinancialDataService(dataRepo portsrepo.FinancialDataRepository, companyRepo portsrepo.CompanyRepository) portssvc.FinancialDataSvc {
	return &financialDataService{dataRepo: dataRepo, companyRepo: companyRepo}
}

var _ portssvc.FinancialDataSvc = (*financialDataService)(nil)

func (s *financialDataService) SubmitFinancialData(ctx context.Context, req dto.CreateFinancialDataRequest, caller portssvc.Caller) (*domain.FinancialData, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company for statement", slog.String("company_id", req.CompanyID))
		}
		return nil, err
	}
	if company.OwnerUserID != caller.UserID && !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now().UTC()
	data := domain.FinancialData{
		FinancialDataID:         uuid.NewString(),
		CompanyID:               req.CompanyID,
		FiscalYear:              req.FiscalYear,
		Cash:                    *req.Cash,
		Receivables:             *req.Receivables,
		Inventory:               *req.Inventory,
		OtherCurrentAssets:      *req.OtherCurrentAssets,
		ShortTermDebt:           *req.ShortTermDebt,
		Payables:                *req.Payables,
		OtherCurrentLiabilities: *req.OtherCurrentLiabilities,
		TotalAssets:             req.TotalAssets,
		TotalLiabilities:        req.TotalLiabilities,
		Equity:                  req.Equity,
		Revenue:                 req.Revenue,
		GrossProfit:             req.GrossProfit,
		NetIncome:               req.NetIncome,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}
	cacheDerivedRatios(&data)

	saved, err := s.dataRepo.UpsertFinancialData(ctx, data)
	if err != nil {
		s.LogError(ctx, err, "Failed to save financial data",
			slog.String("company_id", req.CompanyID),
			slog.Int("fiscal_year", req.FiscalYear))
		return nil, err
	}

	s.LogInfo(ctx, "Financial data saved",
		slog.String("financial_data_id", saved.FinancialDataID),
		slog.Int("fiscal_year", saved.FiscalYear))
	return saved, nil
}

func (s *financialDataService) GetFinancialData(ctx context.Context, financialDataID string, caller portssvc.Caller) (*domain.FinancialData, error) {
	data, err := s.dataRepo.FindFinancialDataByID(ctx, financialDataID)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, data.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find parent company",
			slog.String("financial_data_id", financialDataID))
		return nil, err
	}
	if company.OwnerUserID != caller.UserID && !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	return data, nil
}

func (s *financialDataService) ListFinancialDataByCompany(ctx context.Context, companyID string, caller portssvc.Caller) ([]domain.FinancialData, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerUserID != caller.UserID && !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	records, err := s.dataRepo.ListFinancialDataByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list financial data", slog.String("company_id", companyID))
		return nil, err
	}
	if records == nil {
		records = []domain.FinancialData{}
	}
	return records, nil
}

// cacheDerivedRatios recomputes the three cached liquidity ratios from the
// raw figures.
func cacheDerivedRatios(data *domain.FinancialData) {
	result := ratio.Compute(*data)
	data.CurrentRatio = result[ratio.CurrentRatio].Value
	data.QuickRatio = result[ratio.QuickRatio].Value
	data.CashRatio = result[ratio.CashRatio].Value
}
