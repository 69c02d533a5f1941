package repositories

import (
	"context"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// ReportRepository persists report descriptors. Append-only: there is no
// update or delete.
type ReportRepository interface {
	SaveReport(ctx context.Context, report domain.Report) error
	FindReportByID(ctx context.Context, reportID string) (*domain.Report, error)
	// ListReportsByOwner returns reports newest first.
	ListReportsByOwner(ctx context.Context, ownerUserID string) ([]domain.Report, error)
}
