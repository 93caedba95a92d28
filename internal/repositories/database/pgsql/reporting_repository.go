package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for analytics queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// SumAmountByType totals a user's transactions of one type within [start, end).
func (r *PgxReportingRepository) SumAmountByType(ctx context.Context, userID string, txnType domain.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND transaction_type = $2
		  AND transaction_date >= $3 AND transaction_date < $4;
	`
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, userID, txnType, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s amounts: %w", txnType, err)
	}
	return total, nil
}

// ExpenseTotalsByCategory returns per-category expense totals and counts
// within [start, end), largest total first.
func (r *PgxReportingRepository) ExpenseTotalsByCategory(ctx context.Context, userID string, start, end time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS cnt
		FROM transactions
		WHERE user_id = $1 AND transaction_type = $2
		  AND transaction_date >= $3 AND transaction_date < $4
		GROUP BY category
		ORDER BY total DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, domain.Expense, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}
	defer rows.Close()

	totals := make([]domain.CategoryTotal, 0)
	for rows.Next() {
		var ct domain.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category total row: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}
	return totals, nil
}

// SumUnpaidDebtByType totals a user's unpaid debts of one direction.
func (r *PgxReportingRepository) SumUnpaidDebtByType(ctx context.Context, userID string, debtType domain.DebtType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM debts
		WHERE user_id = $1 AND debt_type = $2 AND is_paid = FALSE;
	`
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, userID, debtType).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum unpaid %s debts: %w", debtType, err)
	}
	return total, nil
}

// ListExpenseAmountsInRange returns individual expense amounts within [start, end).
func (r *PgxReportingRepository) ListExpenseAmountsInRange(ctx context.Context, userID string, start, end time.Time) ([]decimal.Decimal, error) {
	query := `
		SELECT amount
		FROM transactions
		WHERE user_id = $1 AND transaction_type = $2
		  AND transaction_date >= $3 AND transaction_date < $4;
	`
	rows, err := r.Pool.Query(ctx, query, userID, domain.Expense, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense amounts in range: %w", err)
	}
	defer rows.Close()

	amounts := make([]decimal.Decimal, 0)
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense amount: %w", err)
		}
		amounts = append(amounts, amount)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense amount rows: %w", err)
	}
	return amounts, nil
}
