package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/domain"
)

// DBTX is the subset of pgxpool.Pool used by the repository. pgxmock
// satisfies it in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ExpenseRepository struct {
	db DBTX
}

func NewExpenseRepository(db DBTX) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) GetByDateRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Expense, error) {
	query := `
		SELECT id, user_id, description, category, price, expense_date, created_at, updated_at
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2 AND expense_date <= $3
		ORDER BY expense_date;
	`
	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses by date range: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func (r *ExpenseRepository) GetAllByUserID(ctx context.Context, userID int64) ([]domain.Expense, error) {
	query := `
		SELECT id, user_id, description, category, price, expense_date, created_at, updated_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY expense_date;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (user_id, description, category, price, expense_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query, expense.UserID, expense.Description, expense.Category,
		expense.Price, expense.Date, expense.CreatedAt, expense.UpdatedAt).Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) (bool, error) {
	query := `
		UPDATE expenses
		SET description = $1, category = $2, price = $3, expense_date = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7;
	`
	tag, err := r.db.Exec(ctx, query, expense.Description, expense.Category, expense.Price,
		expense.Date, expense.UpdatedAt, expense.ID, expense.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to update expense: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete expense: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		var e domain.Expense
		err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Category, &e.Price,
			&e.Date, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense rows: %w", err)
	}

	return expenses, nil
}
