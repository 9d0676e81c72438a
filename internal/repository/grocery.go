package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/cozyshare/backend/internal/models"
)

type GroceryRepository struct {
	db *pgxpool.Pool
}

// NewGroceryRepository creates the grocery repository.
func NewGroceryRepository(db *pgxpool.Pool) *GroceryRepository {
	return &GroceryRepository{db: db}
}

const groceryColumns = `id, household_code, name, category, quantity, is_purchased, added_by, created_at, updated_at`

func scanGrocery(row pgx.Row) (models.Grocery, error) {
	var grocery models.Grocery
	err := row.Scan(
		&grocery.ID, &grocery.HouseholdCode, &grocery.Name, &grocery.Category,
		&grocery.Quantity, &grocery.IsPurchased, &grocery.AddedBy,
		&grocery.CreatedAt, &grocery.UpdatedAt,
	)
	return grocery, err
}

// ListByHousehold returns a household's grocery list, unpurchased items
// first, newest first within each group.
func (r *GroceryRepository) ListByHousehold(ctx context.Context, householdCode string) ([]models.Grocery, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+groceryColumns+`
		 FROM groceries
		 WHERE household_code = $1
		 ORDER BY is_purchased ASC, created_at DESC`,
		householdCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.Grocery, 0)
	for rows.Next() {
		grocery, err := scanGrocery(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, grocery)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Create inserts a grocery item.
func (r *GroceryRepository) Create(ctx context.Context, grocery models.Grocery) (models.Grocery, error) {
	return scanGrocery(r.db.QueryRow(ctx,
		`INSERT INTO groceries (household_code, name, category, quantity, added_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+groceryColumns,
		grocery.HouseholdCode, grocery.Name, grocery.Category, grocery.Quantity, grocery.AddedBy,
	))
}

// TogglePurchased flips the purchased flag. When an item becomes purchased a
// history entry is recorded in the same transaction, so readers never see a
// purchased item without its history row.
func (r *GroceryRepository) TogglePurchased(ctx context.Context, id uuid.UUID, purchasedBy string) (models.Grocery, error) {
	var grocery models.Grocery

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return grocery, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	current, err := scanGrocery(tx.QueryRow(ctx,
		`SELECT `+groceryColumns+` FROM groceries WHERE id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return grocery, ErrNotFound
		}
		return grocery, err
	}

	grocery, err = scanGrocery(tx.QueryRow(ctx,
		`UPDATE groceries
		 SET is_purchased = NOT is_purchased,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+groceryColumns,
		id,
	))
	if err != nil {
		return grocery, err
	}

	if !current.IsPurchased {
		_, err = tx.Exec(ctx,
			`INSERT INTO grocery_history (household_code, grocery_id, name, quantity, category, added_by, purchased_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			current.HouseholdCode, current.ID, current.Name, current.Quantity,
			current.Category, current.AddedBy, purchasedBy,
		)
		if err != nil {
			return grocery, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return grocery, err
	}

	return grocery, nil
}

// Delete removes a grocery item; its history rows go with it.
func (r *GroceryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM groceries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListHistoryByHousehold returns a household's purchase history, most recent
// first.
func (r *GroceryRepository) ListHistoryByHousehold(ctx context.Context, householdCode string) ([]models.GroceryHistory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, household_code, grocery_id, name, quantity, category, added_by, purchased_by, purchased_at
		 FROM grocery_history
		 WHERE household_code = $1
		 ORDER BY purchased_at DESC`,
		householdCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.GroceryHistory, 0)
	for rows.Next() {
		var entry models.GroceryHistory

		err := rows.Scan(
			&entry.ID, &entry.HouseholdCode, &entry.GroceryID, &entry.Name,
			&entry.Quantity, &entry.Category, &entry.AddedBy, &entry.PurchasedBy, &entry.PurchasedAt,
		)
		if err != nil {
			return nil, err
		}

		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
