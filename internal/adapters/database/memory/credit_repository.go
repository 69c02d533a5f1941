package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
)

type CreditAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]domain.CreditAccount
}

func NewCreditAccountRepository() *CreditAccountRepository {
	return &CreditAccountRepository{accounts: make(map[string]domain.CreditAccount)}
}

var _ portsrepo.CreditAccountRepository = (*CreditAccountRepository)(nil)

func (r *CreditAccountRepository) SaveCreditAccount(ctx context.Context, account domain.CreditAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.UserID]; exists {
		return apperrors.ErrDuplicate
	}
	r.accounts[account.UserID] = account
	return nil
}

func (r *CreditAccountRepository) FindCreditAccountByUserID(ctx context.Context, userID string) (*domain.CreditAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

// DebitIfSufficient performs the check-then-debit under the store mutex, so
// two concurrent debits against the same account serialize: one wins, the
// other sees the post-debit balance in its InsufficientCreditsError.
func (r *CreditAccountRepository) DebitIfSufficient(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: debit amount must be non-negative", apperrors.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[userID]
	if !ok {
		return 0, apperrors.ErrNotFound
	}
	if account.Balance < amount {
		return 0, &apperrors.InsufficientCreditsError{Have: account.Balance, Need: amount}
	}
	account.Balance -= amount
	account.LastUpdatedAt = time.Now().UTC()
	r.accounts[userID] = account
	return account.Balance, nil
}

func (r *CreditAccountRepository) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: credit amount must be non-negative", apperrors.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[userID]
	if !ok {
		return 0, apperrors.ErrNotFound
	}
	account.Balance += amount
	account.LastUpdatedAt = time.Now().UTC()
	r.accounts[userID] = account
	return account.Balance, nil
}
