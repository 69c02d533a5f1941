package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/finratios/fin_report_app/internal/apperrors"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/finratios/fin_report_app/internal/dto"
	"github.com/finratios/fin_report_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// reportHandler handles HTTP requests for report generation and retrieval.
type reportHandler struct {
	reportService portssvc.ReportSvc
}

func newReportHandler(rs portssvc.ReportSvc) *reportHandler {
	return &reportHandler{reportService: rs}
}

// registerReportRoutes registers routes for reports. Generation is
// rate-limited per client IP when a limiter is provided.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvc, limiterInstance *limiter.Limiter) {
	h := newReportHandler(reportService)

	reports := rg.Group("/reports")
	{
		if limiterInstance != nil {
			reports.POST("", middleware.RateLimit(limiterInstance), h.createReport)
		} else {
			reports.POST("", h.createReport)
		}
		reports.GET("", h.listReports)
		reports.GET("/:id", h.getReport)
		reports.GET("/:id/download", h.downloadReport)
	}
}

// createReport godoc
// @Summary Generate a report
// @Description Renders the selected ratios in the requested format, debits the caller's credits, and stores the report. Nothing is charged when rendering fails, and nothing is stored when the debit fails.
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   report body dto.CreateReportRequest true "Report parameters"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 402 {object} dto.InsufficientCreditsResponse "Insufficient credits"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company or statement not found"
// @Failure 422 {object} map[string]string "Rendering failed"
// @Security BearerAuth
// @Router /reports [post]
func (h *reportHandler) createReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, quote, err := h.reportService.GenerateReport(c.Request.Context(), req, caller)
	if err != nil {
		var insufficient *apperrors.InsufficientCreditsError
		switch {
		case errors.As(err, &insufficient):
			c.JSON(http.StatusPaymentRequired, dto.InsufficientCreditsResponse{
				Error: "Insufficient credits",
				Have:  insufficient.Have,
				Need:  insufficient.Need,
			})
		case errors.Is(err, apperrors.ErrRender):
			logger.Warn("Report rendering failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Report rendering failed"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Company or statement not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to generate report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreatedReportResponse(report, quote))
}

// listReports godoc
// @Summary List reports
// @Description Lists the caller's reports, newest first
// @Tags reports
// @Produce  json
// @Success 200 {array} dto.ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports [get]
func (h *reportHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reports, err := h.reportService.ListReports(c.Request.Context(), caller)
	if err != nil {
		logger.Error("Failed to list reports", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListReportResponse(reports))
}

// getReport godoc
// @Summary Get a report
// @Description Retrieves a stored report with the company and statement it was generated from; owners and admins only
// @Tags reports
// @Produce  json
// @Param   id path string true "Report ID"
// @Success 200 {object} dto.ReportDetailResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Report not found"
// @Security BearerAuth
// @Router /reports/{id} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, company, data, err := h.reportService.GetReportDetail(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		respondReportError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReportDetailResponse{
		Report:        dto.ToReportResponse(report),
		Company:       dto.ToCompanyResponse(company),
		FinancialData: dto.ToFinancialDataResponse(data),
	})
}

// downloadReport godoc
// @Summary Download a report artifact
// @Description Streams the rendered report file with its original filename
// @Tags reports
// @Produce  octet-stream
// @Param   id path string true "Report ID"
// @Success 200 {file} binary
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/download [get]
func (h *reportHandler) downloadReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	artifact, err := h.reportService.DownloadArtifact(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		respondReportError(c, logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.SuggestedFilename))
	c.Data(http.StatusOK, artifact.MIMEType, artifact.Bytes)
}

func respondReportError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logger.Error("Report operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Report operation failed"})
	}
}
