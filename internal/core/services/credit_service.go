package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
)

// creditService implements the credit ledger. The admin-bypass rule lives
// here and nowhere else; the repository provides the atomic check-then-debit.
type creditService struct {
	BaseService
	creditRepo portsrepo.CreditAccountRepository
}

// NewCreditService creates a new credit ledger service.
func NewCreditService(repo portsrepo.CreditAccountRepository) portssvc.CreditSvc {
	return &creditService{creditRepo: repo}
}

var _ portssvc.CreditSvc = (*creditService)(nil)

func (s *creditService) AuthorizeAndDebit(ctx context.Context, userID string, required int64) (*domain.DebitReceipt, error) {
	account, err := s.creditRepo.FindCreditAccountByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load credit account", slog.String("user_id", userID))
		}
		return nil, err
	}

	if account.Role == domain.RoleAdmin {
		s.LogDebug(ctx, "Admin debit bypassed",
			slog.String("user_id", userID),
			slog.Int64("required", required))
		return &domain.DebitReceipt{
			UserID:           userID,
			Debited:          0,
			RemainingBalance: account.Balance,
			Bypassed:         true,
			DebitedAt:        time.Now().UTC(),
		}, nil
	}

	remaining, err := s.creditRepo.DebitIfSufficient(ctx, userID, required)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientCredits) {
			s.LogInfo(ctx, "Debit rejected: insufficient credits",
				slog.String("user_id", userID),
				slog.Int64("required", required))
		} else {
			s.LogError(ctx, err, "Debit failed", slog.String("user_id", userID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Credits debited",
		slog.String("user_id", userID),
		slog.Int64("debited", required),
		slog.Int64("remaining", remaining))
	return &domain.DebitReceipt{
		UserID:           userID,
		Debited:          required,
		RemainingBalance: remaining,
		DebitedAt:        time.Now().UTC(),
	}, nil
}

func (s *creditService) Credit(ctx context.Context, userID string, amount int64) (*domain.CreditAccount, error) {
	if _, err := s.creditRepo.Credit(ctx, userID, amount); err != nil {
		s.LogError(ctx, err, "Failed to credit account",
			slog.String("user_id", userID),
			slog.Int64("amount", amount))
		return nil, err
	}
	s.LogInfo(ctx, "Account credited",
		slog.String("user_id", userID),
		slog.Int64("amount", amount))
	return s.creditRepo.FindCreditAccountByUserID(ctx, userID)
}

func (s *creditService) GetAccount(ctx context.Context, userID string) (*domain.CreditAccount, error) {
	return s.creditRepo.FindCreditAccountByUserID(ctx, userID)
}

// EnsureAccount creates the account with a zero balance if it does not exist
// yet; called at registration.
func (s *creditService) EnsureAccount(ctx context.Context, userID string, role domain.UserRole) (*domain.CreditAccount, error) {
	account, err := s.creditRepo.FindCreditAccountByUserID(ctx, userID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created := domain.CreditAccount{
		UserID:  userID,
		Balance: 0,
		Role:    role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.creditRepo.SaveCreditAccount(ctx, created); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent registration; the account exists.
			return s.creditRepo.FindCreditAccountByUserID(ctx, userID)
		}
		s.LogError(ctx, err, "Failed to create credit account", slog.String("user_id", userID))
		return nil, err
	}
	return &created, nil
}
