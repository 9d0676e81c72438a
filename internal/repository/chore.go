package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/cozyshare/backend/internal/chores"
	"example.com/cozyshare/backend/internal/models"
)

type ChoreRepository struct {
	db *pgxpool.Pool
}

// NewChoreRepository creates the chore repository.
func NewChoreRepository(db *pgxpool.Pool) *ChoreRepository {
	return &ChoreRepository{db: db}
}

const choreColumns = `id, household_code, title, description, created_by, assigned_to, due_date,
	frequency, completed, completed_at, completed_by, last_completed_at, last_completed_by,
	created_at, updated_at`

func scanChore(row pgx.Row) (models.Chore, error) {
	var chore models.Chore
	err := row.Scan(
		&chore.ID, &chore.HouseholdCode, &chore.Title, &chore.Description,
		&chore.CreatedBy, &chore.AssignedTo, &chore.DueDate,
		&chore.Frequency, &chore.Completed, &chore.CompletedAt, &chore.CompletedBy,
		&chore.LastCompletedAt, &chore.LastCompletedBy,
		&chore.CreatedAt, &chore.UpdatedAt,
	)
	return chore, err
}

// ListByHousehold returns a household's chores ordered by ascending due date,
// newest-created first among equal due dates.
func (r *ChoreRepository) ListByHousehold(ctx context.Context, householdCode string) ([]models.Chore, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+choreColumns+`
		 FROM chores
		 WHERE household_code = $1
		 ORDER BY due_date ASC, created_at DESC`,
		householdCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.Chore, 0)
	for rows.Next() {
		chore, err := scanChore(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, chore)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Create inserts a chore.
func (r *ChoreRepository) Create(ctx context.Context, chore models.Chore) (models.Chore, error) {
	return scanChore(r.db.QueryRow(ctx,
		`INSERT INTO chores (household_code, title, description, created_by, assigned_to, due_date, frequency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+choreColumns,
		chore.HouseholdCode, chore.Title, chore.Description, chore.CreatedBy,
		chore.AssignedTo, chore.DueDate, chore.Frequency,
	))
}

// AttemptComplete applies a completion attempt as a single read-modify-write
// against the row. The row lock keeps racing attempts from tearing the record
// into a mixed state; the last writer simply wins.
func (r *ChoreRepository) AttemptComplete(ctx context.Context, id uuid.UUID, actingUser string, now time.Time) (models.Chore, error) {
	var chore models.Chore

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return chore, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	current, err := scanChore(tx.QueryRow(ctx,
		`SELECT `+choreColumns+`
		 FROM chores
		 WHERE id = $1
		 FOR UPDATE`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chore, ErrNotFound
		}
		return chore, err
	}

	mutated, err := chores.AttemptComplete(current, actingUser, now)
	if err != nil {
		return chore, err
	}

	chore, err = scanChore(tx.QueryRow(ctx,
		`UPDATE chores
		 SET due_date = $2,
		     completed = $3,
		     completed_at = $4,
		     completed_by = $5,
		     last_completed_at = $6,
		     last_completed_by = $7,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+choreColumns,
		id, mutated.DueDate, mutated.Completed, mutated.CompletedAt, mutated.CompletedBy,
		mutated.LastCompletedAt, mutated.LastCompletedBy,
	))
	if err != nil {
		return chore, err
	}

	if err := tx.Commit(ctx); err != nil {
		return chore, err
	}

	return chore, nil
}

// Delete removes a chore.
func (r *ChoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM chores WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
