package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/cozyshare/backend/internal/models"
)

type SettlementRepository struct {
	db *pgxpool.Pool
}

// NewSettlementRepository creates the settlement repository.
func NewSettlementRepository(db *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{db: db}
}

const settlementColumns = `id, household_code, from_member, to_member, amount, created_at`

func scanSettlement(row pgx.Row) (models.Settlement, error) {
	var settlement models.Settlement
	err := row.Scan(
		&settlement.ID, &settlement.HouseholdCode, &settlement.From,
		&settlement.To, &settlement.Amount, &settlement.CreatedAt,
	)
	return settlement, err
}

// ListByHousehold returns a household's settlements newest first.
func (r *SettlementRepository) ListByHousehold(ctx context.Context, householdCode string) ([]models.Settlement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+settlementColumns+`
		 FROM settlements
		 WHERE household_code = $1
		 ORDER BY created_at DESC`,
		householdCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settlements := make([]models.Settlement, 0)
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, settlement)
	}

	return settlements, rows.Err()
}

// Create inserts a settlement built by the ledger package.
func (r *SettlementRepository) Create(ctx context.Context, settlement models.Settlement) (models.Settlement, error) {
	return scanSettlement(r.db.QueryRow(ctx,
		`INSERT INTO settlements (household_code, from_member, to_member, amount)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+settlementColumns,
		settlement.HouseholdCode, settlement.From, settlement.To, settlement.Amount,
	))
}

// Delete removes a settlement.
func (r *SettlementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM settlements WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
