// Package memory provides arena-style in-memory repositories behind the same
// ports as the pgsql adapters, for tests and database-less runs. Entities are
// stored by stable UUID key with explicit CRUD methods so storage can move to
// a real database without touching the pipeline.
package memory

import (
	"context"
	"sync"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
)

type CompanyRepository struct {
	mu        sync.RWMutex
	companies map[string]domain.Company
}

func NewCompanyRepository() *CompanyRepository {
	return &CompanyRepository{companies: make(map[string]domain.Company)}
}

var _ portsrepo.CompanyRepository = (*CompanyRepository)(nil)

func (r *CompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.companies[company.CompanyID]; exists {
		return apperrors.ErrDuplicate
	}
	for _, existing := range r.companies {
		if existing.OwnerUserID == company.OwnerUserID && existing.Code == company.Code {
			return apperrors.ErrDuplicate
		}
	}
	r.companies[company.CompanyID] = company
	return nil
}

func (r *CompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	company, ok := r.companies[companyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &company, nil
}

func (r *CompanyRepository) ListCompaniesByOwner(ctx context.Context, ownerUserID string) ([]domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	companies := []domain.Company{}
	for _, company := range r.companies {
		if company.OwnerUserID == ownerUserID {
			companies = append(companies, company)
		}
	}
	return companies, nil
}

func (r *CompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.CompanyID]; !ok {
		return apperrors.ErrNotFound
	}
	r.companies[company.CompanyID] = company
	return nil
}
