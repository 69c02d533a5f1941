package repositories

import (
	"context"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// CreditAccountRepository persists per-user credit balances. DebitIfSufficient
// and Credit are the only balance mutations and both are atomic: the
// check-then-debit in DebitIfSufficient must not interleave with another debit
// against the same account.
type CreditAccountRepository interface {
	SaveCreditAccount(ctx context.Context, account domain.CreditAccount) error
	FindCreditAccountByUserID(ctx context.Context, userID string) (*domain.CreditAccount, error)
	// DebitIfSufficient decrements the balance by amount iff balance >= amount,
	// returning the remaining balance. On an insufficient balance it returns an
	// *apperrors.InsufficientCreditsError and leaves the account unchanged.
	DebitIfSufficient(ctx context.Context, userID string, amount int64) (int64, error)
	// Credit adds a non-negative amount and returns the new balance.
	Credit(ctx context.Context, userID string, amount int64) (int64, error)
}
