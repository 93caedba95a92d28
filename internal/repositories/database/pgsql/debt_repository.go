package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for debt data.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDebtRepository implements portsrepo.DebtRepositoryFacade
var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const debtColumns = `debt_id, user_id, debt_type, person_name, amount, description, due_date, is_paid, paid_date, created_at, created_by, last_updated_at, last_updated_by`

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var d domain.Debt
	err := row.Scan(
		&d.DebtID,
		&d.UserID,
		&d.Type,
		&d.PersonName,
		&d.Amount,
		&d.Description,
		&d.DueDate,
		&d.IsPaid,
		&d.PaidDate,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		debt.DebtID,
		debt.UserID,
		debt.Type,
		debt.PersonName,
		debt.Amount,
		debt.Description,
		debt.DueDate,
		debt.IsPaid,
		debt.PaidDate,
		debt.CreatedAt,
		debt.CreatedBy,
		debt.LastUpdatedAt,
		debt.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save debt: %w", err)
	}
	return nil
}

func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`
	debt, err := scanDebt(r.Pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find debt by ID: %w", err)
	}
	return debt, nil
}

func (r *PgxDebtRepository) ListDebtsByUser(ctx context.Context, userID string, filter portsrepo.DebtFilter) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND debt_type = $%d", len(args))
	}
	if filter.IsPaid != nil {
		args = append(args, *filter.IsPaid)
		query += fmt.Sprintf(" AND is_paid = $%d", len(args))
	}
	query += " ORDER BY due_date;"

	return r.queryDebts(ctx, query, args...)
}

func (r *PgxDebtRepository) ListUpcomingDebts(ctx context.Context, userID string, now, until time.Time) ([]domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1 AND is_paid = FALSE AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date;
	`
	return r.queryDebts(ctx, query, userID, now, until)
}

func (r *PgxDebtRepository) queryDebts(ctx context.Context, query string, args ...interface{}) ([]domain.Debt, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	debts := make([]domain.Debt, 0)
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt row: %w", err)
		}
		debts = append(debts, *debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debt rows: %w", err)
	}
	return debts, nil
}

func (r *PgxDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		UPDATE debts
		SET debt_type = $2, person_name = $3, amount = $4, description = $5,
		    due_date = $6, is_paid = $7, paid_date = $8, last_updated_at = $9, last_updated_by = $10
		WHERE debt_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		debt.DebtID,
		debt.Type,
		debt.PersonName,
		debt.Amount,
		debt.Description,
		debt.DueDate,
		debt.IsPaid,
		debt.PaidDate,
		debt.LastUpdatedAt,
		debt.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM debts WHERE debt_id = $1;`, debtID)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
