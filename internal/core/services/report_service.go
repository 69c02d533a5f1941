package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/artifacts"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/finratios/fin_report_app/internal/core/pricing"
	"github.com/finratios/fin_report_app/internal/core/ratio"
	"github.com/finratios/fin_report_app/internal/dto"
	"github.com/finratios/fin_report_app/internal/render"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reportService runs the generation pipeline in the contract order:
// compute -> render -> authorize-and-debit -> persist. A render failure never
// reaches the ledger; a debit failure never reaches the store.
type reportService struct {
	BaseService
	reportRepo  portsrepo.ReportRepository
	dataRepo    portsrepo.FinancialDataRepository
	companyRepo portsrepo.CompanyRepository
	creditSvc   portssvc.CreditSvc
	renderers   render.Registry
	artifacts   artifacts.Store
	unitPrice   decimal.Decimal
}

// NewReportService creates a new report pipeline service.
func NewReportService(
	reportRepo portsrepo.ReportRepository,
	dataRepo portsrepo.FinancialDataRepository,
	companyRepo portsrepo.CompanyRepository,
	creditSvc portssvc.CreditSvc,
	renderers render.Registry,
	artifactStore artifacts.Store,
	unitPrice decimal.Decimal,
) portssvc.ReportSvc {
	return &reportService{
		reportRepo:  reportRepo,
		dataRepo:    dataRepo,
		companyRepo: companyRepo,
		creditSvc:   creditSvc,
		renderers:   renderers,
		artifacts:   artifactStore,
		unitPrice:   unitPrice,
	}
}

var _ portssvc.ReportSvc = (*reportService)(nil)

func (s *reportService) GenerateReport(ctx context.Context, req dto.CreateReportRequest, caller portssvc.Caller) (*domain.Report, pricing.Quote, error) {
	var quote pricing.Quote

	// (a) Load and validate inputs; compute ratios.
	data, err := s.dataRepo.FindFinancialDataByID(ctx, req.FinancialDataID)
	if err != nil {
		return nil, quote, err
	}
	if data.CompanyID != req.CompanyID {
		return nil, quote, fmt.Errorf("%w: financial data does not belong to company", apperrors.ErrValidation)
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID)
	if err != nil {
		return nil, quote, err
	}
	if company.OwnerUserID != caller.UserID && !caller.IsAdmin() {
		return nil, quote, apperrors.ErrForbidden
	}

	selected, err := normalizeSelection(req.SelectedRatioIDs)
	if err != nil {
		return nil, quote, err
	}

	format := domain.ReportFormat(req.Format)
	renderer, ok := s.renderers.Get(format)
	if !ok {
		return nil, quote, fmt.Errorf("%w: unsupported report format %q", apperrors.ErrValidation, req.Format)
	}

	// (b) Render before touching the ledger.
	now := time.Now().UTC()
	artifact, err := renderer.Render(render.Input{
		Company:     *company,
		Statement:   *data,
		Ratios:      ratio.Compute(*data),
		Selected:    selected,
		GeneratedAt: now,
	})
	if err != nil {
		s.LogError(ctx, err, "Report rendering failed",
			slog.String("format", req.Format),
			slog.String("financial_data_id", req.FinancialDataID))
		return nil, quote, err
	}

	// (c) Quote and debit atomically; admins bypass inside the ledger.
	quote = pricing.NewQuote(req.CompaniesCount, req.PeriodsCount, req.RatiosCount, s.unitPrice)
	receipt, err := s.creditSvc.AuthorizeAndDebit(ctx, caller.UserID, quote.RequiredCredits)
	if err != nil {
		return nil, quote, err
	}

	// (d) Persist artifact and descriptor.
	reportID := uuid.NewString()
	locator, err := s.artifacts.Put(ctx, path.Join(reportID, artifact.SuggestedFilename), artifact.Bytes)
	if err != nil {
		s.LogError(ctx, err, "Failed to store report artifact", slog.String("report_id", reportID))
		return nil, quote, err
	}

	selectedIDs := make([]string, len(selected))
	for i, id := range selected {
		selectedIDs[i] = string(id)
	}
	report := domain.Report{
		ReportID:        reportID,
		OwnerUserID:     caller.UserID,
		CompanyID:       company.CompanyID,
		FinancialDataID: data.FinancialDataID,
		Format:          format,
		SelectedRatios:  selectedIDs,
		ArtifactLocator: locator,
		CreditsCharged:  receipt.Debited,
		CreatedAt:       now,
	}
	if err := s.reportRepo.SaveReport(ctx, report); err != nil {
		s.LogError(ctx, err, "Failed to save report record", slog.String("report_id", reportID))
		return nil, quote, err
	}

	s.LogInfo(ctx, "Report generated",
		slog.String("report_id", reportID),
		slog.String("format", req.Format),
		slog.Int64("credits_charged", receipt.Debited),
		slog.Bool("bypassed", receipt.Bypassed))
	return &report, quote, nil
}

func (s *reportService) GetReport(ctx context.Context, reportID string, caller portssvc.Caller) (*domain.Report, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.OwnerUserID != caller.UserID && !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return report, nil
}

func (s *reportService) GetReportDetail(ctx context.Context, reportID string, caller portssvc.Caller) (*domain.Report, *domain.Company, *domain.FinancialData, error) {
	report, err := s.GetReport(ctx, reportID, caller)
	if err != nil {
		return nil, nil, nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, report.CompanyID)
	if err != nil {
		return nil, nil, nil, err
	}
	data, err := s.dataRepo.FindFinancialDataByID(ctx, report.FinancialDataID)
	if err != nil {
		return nil, nil, nil, err
	}
	return report, company, data, nil
}

func (s *reportService) ListReports(ctx context.Context, caller portssvc.Caller) ([]domain.Report, error) {
	reports, err := s.reportRepo.ListReportsByOwner(ctx, caller.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reports", slog.String("owner_id", caller.UserID))
		return nil, err
	}
	if reports == nil {
		reports = []domain.Report{}
	}
	return reports, nil
}

func (s *reportService) DownloadArtifact(ctx context.Context, reportID string, caller portssvc.Caller) (*render.Artifact, error) {
	report, err := s.GetReport(ctx, reportID, caller)
	if err != nil {
		return nil, err
	}

	payload, err := s.artifacts.Get(ctx, report.ArtifactLocator)
	if err != nil {
		s.LogError(ctx, err, "Failed to load report artifact",
			slog.String("report_id", reportID),
			slog.String("locator", report.ArtifactLocator))
		return nil, err
	}

	mimeType := "application/octet-stream"
	if renderer, ok := s.renderers.Get(report.Format); ok {
		mimeType = renderer.MIMEType()
	}
	return &render.Artifact{
		Bytes:             payload,
		SuggestedFilename: path.Base(report.ArtifactLocator),
		MIMEType:          mimeType,
	}, nil
}

// normalizeSelection maps wire identifiers to canonical ratio ids, preserving
// order and dropping duplicates (the acidTestRatio alias folds into
// quickRatio here).
func normalizeSelection(ids []string) ([]ratio.ID, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: selectedRatioIds must not be empty", apperrors.ErrValidation)
	}
	seen := make(map[ratio.ID]struct{}, len(ids))
	selected := make([]ratio.ID, 0, len(ids))
	for _, raw := range ids {
		id, ok := ratio.CanonicalID(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown ratio id %q", apperrors.ErrValidation, raw)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		selected = append(selected, id)
	}
	return selected, nil
}
