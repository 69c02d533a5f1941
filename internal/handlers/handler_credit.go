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

// creditHandler handles HTTP requests for the credit ledger.
type creditHandler struct {
	creditService portssvc.CreditSvc
}

func newCreditHandler(cs portssvc.CreditSvc) *creditHandler {
	return &creditHandler{creditService: cs}
}

// registerCreditRoutes registers routes for credit balances and top-ups.
func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvc) {
	h := newCreditHandler(creditService)

	credits := rg.Group("/credits")
	{
		credits.GET("", h.getBalance)
		credits.POST("/topup", h.topUp)
	}
}

// getBalance godoc
// @Summary Get credit balance
// @Description Retrieves the authenticated user's credit account
// @Tags credits
// @Produce  json
// @Success 200 {object} dto.CreditAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /credits [get]
func (h *creditHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.creditService.GetAccount(c.Request.Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit account not found"})
			return
		}
		logger.Error("Failed to load credit account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load credit account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditAccountResponse(account))
}

// topUp godoc
// @Summary Top up a user's credits
// @Description Adds credits to a user's account; admins only
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   topup body dto.TopUpRequest true "Top-up details"
// @Success 200 {object} dto.CreditAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Admins only"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /credits/topup [post]
func (h *creditHandler) topUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !caller.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admins only"})
		return
	}

	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.creditService.Credit(c.Request.Context(), req.UserID, *req.Amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit account not found"})
			return
		}
		logger.Error("Failed to top up credits",
			slog.String("target_user_id", req.UserID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to top up credits"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditAccountResponse(account))
}
