package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
)

type ReportRepository struct {
	mu      sync.RWMutex
	reports map[string]domain.Report
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: make(map[string]domain.Report)}
}

var _ portsrepo.ReportRepository = (*ReportRepository)(nil)

func (r *ReportRepository) SaveReport(ctx context.Context, report domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reports[report.ReportID]; exists {
		return apperrors.ErrDuplicate
	}
	r.reports[report.ReportID] = report
	return nil
}

func (r *ReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.reports[reportID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &report, nil
}

func (r *ReportRepository) ListReportsByOwner(ctx context.Context, ownerUserID string) ([]domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reports := []domain.Report{}
	for _, report := range r.reports {
		if report.OwnerUserID == ownerUserID {
			reports = append(reports, report)
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}
