package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/cozyshare/backend/internal/models"
)

type ExpenseRepository struct {
	db *pgxpool.Pool
}

// NewExpenseRepository creates the shared-expense repository.
func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, household_code, title, amount, paid_by, split_with,
	per_person, expense_type, purchase_date, due_date, notes, created_at`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var expense models.Expense
	err := row.Scan(
		&expense.ID, &expense.HouseholdCode, &expense.Title, &expense.Amount,
		&expense.PaidBy, &expense.SplitWith, &expense.PerPerson, &expense.Type,
		&expense.PurchaseDate, &expense.DueDate, &expense.Notes, &expense.CreatedAt,
	)
	return expense, err
}

// ListByHousehold returns a household's expenses newest first.
func (r *ExpenseRepository) ListByHousehold(ctx context.Context, householdCode string) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses
		 WHERE household_code = $1
		 ORDER BY created_at DESC`,
		householdCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

// Create inserts an expense built by the ledger package.
func (r *ExpenseRepository) Create(ctx context.Context, expense models.Expense) (models.Expense, error) {
	return scanExpense(r.db.QueryRow(ctx,
		`INSERT INTO expenses
			(household_code, title, amount, paid_by, split_with, per_person,
			 expense_type, purchase_date, due_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+expenseColumns,
		expense.HouseholdCode, expense.Title, expense.Amount, expense.PaidBy,
		expense.SplitWith, expense.PerPerson, expense.Type, expense.PurchaseDate,
		expense.DueDate, expense.Notes,
	))
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
