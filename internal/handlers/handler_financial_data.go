package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finratios/fin_report_app/internal/apperrors"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/finratios/fin_report_app/internal/dto"
	"github.com/finratios/fin_report_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financialDataHandler handles HTTP requests for statement figures.
type financialDataHandler struct {
	dataService portssvc.FinancialDataSvc
}

func newFinancialDataHandler(fs portssvc.FinancialDataSvc) *financialDataHandler {
	return &financialDataHandler{dataService: fs}
}

// registerFinancialDataRoutes registers routes for statement figures.
func registerFinancialDataRoutes(rg *gin.RouterGroup, dataService portssvc.FinancialDataSvc) {
	h := newFinancialDataHandler(dataService)

	rg.POST("/financial-data", h.submitFinancialData)
	rg.GET("/financial-data/:id", h.getFinancialData)
	rg.GET("/companies/:id/financial-data", h.listFinancialData)
}

// submitFinancialData godoc
// @Summary Submit statement figures
// @Description Saves one fiscal year's figures for a company; resubmitting the same year replaces the figures
// @Tags financial-data
// @Accept  json
// @Produce  json
// @Param   data body dto.CreateFinancialDataRequest true "Statement figures"
// @Success 201 {object} dto.FinancialDataResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /financial-data [post]
func (h *financialDataHandler) submitFinancialData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFinancialDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitFinancialData", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	data, err := h.dataService.SubmitFinancialData(c.Request.Context(), req, caller)
	if err != nil {
		respondFinancialDataError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFinancialDataResponse(data))
}

// getFinancialData godoc
// @Summary Get statement figures
// @Description Retrieves one fiscal year's figures with derived totals and cached ratios
// @Tags financial-data
// @Produce  json
// @Param   id path string true "Financial data ID"
// @Success 200 {object} dto.FinancialDataResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /financial-data/{id} [get]
func (h *financialDataHandler) getFinancialData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	data, err := h.dataService.GetFinancialData(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		respondFinancialDataError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialDataResponse(data))
}

// listFinancialData godoc
// @Summary List statement figures for a company
// @Description Lists a company's fiscal years, newest first
// @Tags financial-data
// @Produce  json
// @Param   id path string true "Company ID"
// @Success 200 {array} dto.FinancialDataResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{id}/financial-data [get]
func (h *financialDataHandler) listFinancialData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.dataService.ListFinancialDataByCompany(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		respondFinancialDataError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListFinancialDataResponse(records))
}

func respondFinancialDataError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Financial data operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Financial data operation failed"})
	}
}
