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

type PgxFinancialDataRepository struct {
	pool *pgxpool.Pool
}

// NewPgxFinancialDataRepository creates a new repository for statement figures.
func NewPgxFinancialDataRepository(pool *pgxpool.Pool) portsrepo.FinancialDataRepository {
	return &PgxFinancialDataRepository{pool: pool}
}

const financialDataColumns = `
	financial_data_id, company_id, fiscal_year,
	cash, receivables, inventory, other_current_assets,
	short_term_debt, payables, other_current_liabilities,
	total_assets, total_liabilities, equity, revenue, gross_profit, net_income,
	current_ratio, quick_ratio, cash_ratio,
	created_at, created_by, last_updated_at, last_updated_by`

func scanFinancialData(row pgx.Row) (domain.FinancialData, error) {
	var d domain.FinancialData
	err := row.Scan(
		&d.FinancialDataID,
		&d.CompanyID,
		&d.FiscalYear,
		&d.Cash,
		&d.Receivables,
		&d.Inventory,
		&d.OtherCurrentAssets,
		&d.ShortTermDebt,
		&d.Payables,
		&d.OtherCurrentLiabilities,
		&d.TotalAssets,
		&d.TotalLiabilities,
		&d.Equity,
		&d.Revenue,
		&d.GrossProfit,
		&d.NetIncome,
		&d.CurrentRatio,
		&d.QuickRatio,
		&d.CashRatio,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	return d, err
}

// UpsertFinancialData inserts a fiscal year's figures, replacing the figures
// on conflict with (company_id, fiscal_year). The original record id and
// creation audit survive a replace.
func (r *PgxFinancialDataRepository) UpsertFinancialData(ctx context.Context, data domain.FinancialData) (*domain.FinancialData, error) {
	query := `
		INSERT INTO financial_data (` + financialDataColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (company_id, fiscal_year) DO UPDATE SET
			cash = EXCLUDED.cash,
			receivables = EXCLUDED.receivables,
			inventory = EXCLUDED.inventory,
			other_current_assets = EXCLUDED.other_current_assets,
			short_term_debt = EXCLUDED.short_term_debt,
			payables = EXCLUDED.payables,
			other_current_liabilities = EXCLUDED.other_current_liabilities,
			total_assets = EXCLUDED.total_assets,
			total_liabilities = EXCLUDED.total_liabilities,
			equity = EXCLUDED.equity,
			revenue = EXCLUDED.revenue,
			gross_profit = EXCLUDED.gross_profit,
			net_income = EXCLUDED.net_income,
			current_ratio = EXCLUDED.current_ratio,
			quick_ratio = EXCLUDED.quick_ratio,
			cash_ratio = EXCLUDED.cash_ratio,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + financialDataColumns + `;
	`
	saved, err := scanFinancialData(r.pool.QueryRow(ctx, query,
		data.FinancialDataID,
		data.CompanyID,
		data.FiscalYear,
		data.Cash,
		data.Receivables,
		data.Inventory,
		data.OtherCurrentAssets,
		data.ShortTermDebt,
		data.Payables,
		data.OtherCurrentLiabilities,
		data.TotalAssets,
		data.TotalLiabilities,
		data.Equity,
		data.Revenue,
		data.GrossProfit,
		data.NetIncome,
		data.CurrentRatio,
		data.QuickRatio,
		data.CashRatio,
		data.CreatedAt,
		data.CreatedBy,
		data.LastUpdatedAt,
		data.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert financial data for company %s year %d: %w", data.CompanyID, data.FiscalYear, err)
	}
	return &saved, nil
}

func (r *PgxFinancialDataRepository) FindFinancialDataByID(ctx context.Context, financialDataID string) (*domain.FinancialData, error) {
	query := `SELECT ` + financialDataColumns + ` FROM financial_data WHERE financial_data_id = $1;`
	data, err := scanFinancialData(r.pool.QueryRow(ctx, query, financialDataID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find financial data %s: %w", financialDataID, err)
	}
	return &data, nil
}

func (r *PgxFinancialDataRepository) ListFinancialDataByCompany(ctx context.Context, companyID string) ([]domain.FinancialData, error) {
	query := `SELECT ` + financialDataColumns + ` FROM financial_data WHERE company_id = $1 ORDER BY fiscal_year DESC;`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial data: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FinancialData, error) {
		return scanFinancialData(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan financial data: %w", err)
	}
	return records, nil
}
