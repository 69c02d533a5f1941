package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
)

type FinancialDataRepository struct {
	mu      sync.RWMutex
	records map[string]domain.FinancialData
	// byCompanyYear enforces at most one record per company+fiscal year.
	byCompanyYear map[string]map[int]string
}

func NewFinancialDataRepository() *FinancialDataRepository {
	return &FinancialDataRepository{
		records:       make(map[string]domain.FinancialData),
		byCompanyYear: make(map[string]map[int]string),
	}
}

var _ portsrepo.FinancialDataRepository = (*FinancialDataRepository)(nil)

func (r *FinancialDataRepository) UpsertFinancialData(ctx context.Context, data domain.FinancialData) (*domain.FinancialData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	years, ok := r.byCompanyYear[data.CompanyID]
	if !ok {
		years = make(map[int]string)
		r.byCompanyYear[data.CompanyID] = years
	}

	if existingID, exists := years[data.FiscalYear]; exists {
		// Replace figures in place, keeping the original id and creation audit.
		existing := r.records[existingID]
		data.FinancialDataID = existing.FinancialDataID
		data.CreatedAt = existing.CreatedAt
		data.CreatedBy = existing.CreatedBy
	}

	years[data.FiscalYear] = data.FinancialDataID
	r.records[data.FinancialDataID] = data
	return &data, nil
}

func (r *FinancialDataRepository) FindFinancialDataByID(ctx context.Context, financialDataID string) (*domain.FinancialData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[financialDataID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &record, nil
}

func (r *FinancialDataRepository) ListFinancialDataByCompany(ctx context.Context, companyID string) ([]domain.FinancialData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := []domain.FinancialData{}
	for _, record := range r.records {
		if record.CompanyID == companyID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].FiscalYear > records[j].FiscalYear
	})
	return records, nil
}
