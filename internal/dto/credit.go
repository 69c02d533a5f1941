package dto

import (
	"time"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// TopUpRequest credits a user's account (admin only). Amount is a pointer so
// an explicit zero passes the required check; negative amounts are rejected.
type TopUpRequest struct {
	UserID string `json:"userId" binding:"required"`
	Amount *int64 `json:"amount" binding:"required,gte=0"`
}

// CreditAccountResponse mirrors domain.CreditAccount.
type CreditAccountResponse struct {
	UserID        string    `json:"userID"`
	Balance       int64     `json:"balance"`
	Role          string    `json:"role"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCreditAccountResponse converts a domain.CreditAccount to its DTO.
func ToCreditAccountResponse(a *domain.CreditAccount) CreditAccountResponse {
	return CreditAccountResponse{
		UserID:        a.UserID,
		Balance:       a.Balance,
		Role:          string(a.Role),
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// InsufficientCreditsResponse is the 402 payload carrying have/need so the
// client can present a top-up prompt.
type InsufficientCreditsResponse struct {
	Error string `json:"error"`
	Have  int64  `json:"have"`
	Need  int64  `json:"need"`
}
