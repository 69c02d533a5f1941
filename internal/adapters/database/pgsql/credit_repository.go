package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCreditAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCreditAccountRepository creates a new repository for credit accounts.
func NewPgxCreditAccountRepository(pool *pgxpool.Pool) portsrepo.CreditAccountRepository {
	return &PgxCreditAccountRepository{pool: pool}
}

func (r *PgxCreditAccountRepository) SaveCreditAccount(ctx context.Context, account domain.CreditAccount) error {
	query := `
		INSERT INTO credit_accounts (user_id, balance, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		account.UserID,
		account.Balance,
		account.Role,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save credit account for user %s: %w", account.UserID, err)
	}
	return nil
}

func (r *PgxCreditAccountRepository) FindCreditAccountByUserID(ctx context.Context, userID string) (*domain.CreditAccount, error) {
	query := `
		SELECT user_id, balance, role, created_at, created_by, last_updated_at, last_updated_by
		FROM credit_accounts
		WHERE user_id = $1;
	`
	var account domain.CreditAccount
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.Balance,
		&account.Role,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit account for user %s: %w", userID, err)
	}
	return &account, nil
}

// DebitIfSufficient performs the check-then-debit in a single conditional
// UPDATE so concurrent debits against the same account serialize on the row
// lock and at most one can win the last credit.
func (r *PgxCreditAccountRepository) DebitIfSufficient(ctx context.Context, userID string, amount int64) (int64, error) {
	query := `
		UPDATE credit_accounts
		SET balance = balance - $2, last_updated_at = now()
		WHERE user_id = $1 AND balance >= $2
		RETURNING balance;
	`
	var remaining int64
	err := r.pool.QueryRow(ctx, query, userID, amount).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to debit credit account for user %s: %w", userID, err)
	}

	// No row matched: either the account does not exist or the balance was
	// too low. Distinguish for the caller.
	account, findErr := r.FindCreditAccountByUserID(ctx, userID)
	if findErr != nil {
		return 0, findErr
	}
	return 0, &apperrors.InsufficientCreditsError{Have: account.Balance, Need: amount}
}

func (r *PgxCreditAccountRepository) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	query := `
		UPDATE credit_accounts
		SET balance = balance + $2, last_updated_at = now()
		WHERE user_id = $1
		RETURNING balance;
	`
	var balance int64
	err := r.pool.QueryRow(ctx, query, userID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to credit account for user %s: %w", userID, err)
	}
	return balance, nil
}
