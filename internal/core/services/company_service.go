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
	"github.com/finratios/fin_report_app/internal/dto"
	"github.com/google/uuid"
)

// companyService implements portssvc.CompanySvc.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepository
}

// NewCompanyService creates a new company service.
func NewCompanyService(repo portsrepo.CompanyRepository) portssvc.CompanySvc {
	return &companyService{companyRepo: repo}
}

var _ portssvc.CompanySvc = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error) {
	now := time.Now().UTC()
	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		Sector:      req.Sector,
		OwnerUserID: userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("company_code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Company created", slog.String("company_id", company.CompanyID))
	return &company, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID string, caller portssvc.Caller) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company", slog.String("company_id", companyID))
		}
		return nil, err
	}

	if company.OwnerUserID != caller.UserID && !caller.IsAdmin() {
		s.LogDebug(ctx, "Company access denied",
			slog.String("company_id", companyID),
			slog.String("caller_id", caller.UserID))
		return nil, apperrors.ErrForbidden
	}

	return company, nil
}

func (s *companyService) ListCompanies(ctx context.Context, caller portssvc.Caller) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByOwner(ctx, caller.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies", slog.String("owner_id", caller.UserID))
		return nil, err
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	return companies, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, caller portssvc.Caller) (*domain.Company, error) {
	company, err := s.GetCompany(ctx, companyID, caller)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		company.Name = *req.Name
		updated = true
	}
	if req.Sector != nil {
		company.Sector = *req.Sector
		updated = true
	}
	if !updated {
		return company, nil
	}

	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = caller.UserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Company updated", slog.String("company_id", companyID))
	return company, nil
}
