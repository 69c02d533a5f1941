package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportRepository struct {
	pool *pgxpool.Pool
}

// NewPgxReportRepository creates a new repository for report descriptors.
// The reports table is append-only.
func NewPgxReportRepository(pool *pgxpool.Pool) portsrepo.ReportRepository {
	return &PgxReportRepository{pool: pool}
}

func (r *PgxReportRepository) SaveReport(ctx context.Context, report domain.Report) error {
	query := `
		INSERT INTO reports (report_id, owner_user_id, company_id, financial_data_id, format, selected_ratios, artifact_locator, credits_charged, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		report.ReportID,
		report.OwnerUserID,
		report.CompanyID,
		report.FinancialDataID,
		string(report.Format),
		report.SelectedRatios,
		report.ArtifactLocator,
		report.CreditsCharged,
		report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save report %s: %w", report.ReportID, err)
	}
	return nil
}

func scanReport(row pgx.Row) (domain.Report, error) {
	var report domain.Report
	var format string
	err := row.Scan(
		&report.ReportID,
		&report.OwnerUserID,
		&report.CompanyID,
		&report.FinancialDataID,
		&format,
		&report.SelectedRatios,
		&report.ArtifactLocator,
		&report.CreditsCharged,
		&report.CreatedAt,
	)
	report.Format = domain.ReportFormat(format)
	return report, err
}

func (r *PgxReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	query := `
		SELECT report_id, owner_user_id, company_id, financial_data_id, format, selected_ratios, artifact_locator, credits_charged, created_at
		FROM reports
		WHERE report_id = $1;
	`
	report, err := scanReport(r.pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report %s: %w", reportID, err)
	}
	return &report, nil
}

func (r *PgxReportRepository) ListReportsByOwner(ctx context.Context, ownerUserID string) ([]domain.Report, error) {
	query := `
		SELECT report_id, owner_user_id, company_id, financial_data_id, format, selected_ratios, artifact_locator, credits_charged, created_at
		FROM reports
		WHERE owner_user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Report, error) {
		return scanReport(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reports: %w", err)
	}
	return reports, nil
}
